package main

import (
	"fmt"
	"strings"

	"github.com/pathakanu/healthAI/internal/doctor"
	"github.com/spf13/cobra"
)

type searchFlags struct {
	specialty   string
	maxDistance float64
	minRating   float64
	term        string
	city        string
	lat, lon    float64
}

func newDoctorsCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctors",
		Aliases: []string{"d"},
		Short:   "Find doctors near a location",
	}
	cmd.AddCommand(newDoctorSearchCommand(c), newDoctorShowCommand(c))
	return cmd
}

func newDoctorSearchCommand(c *cli) *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search doctors (defaults to Hyderabad)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			criteria := doctor.Criteria{
				Specialty:   f.specialty,
				MaxDistance: doctor.Float(f.maxDistance),
				MinRating:   f.minRating,
				SearchTerm:  f.term,
			}
			session := doctor.NewSession(c.client())

			var (
				providers []doctor.Provider
				err       error
			)
			flags := cmd.Flags()
			switch {
			case f.city != "":
				providers, err = session.SearchByCity(ctx, f.city, criteria)
			case flags.Changed("lat") || flags.Changed("lon"):
				session.SetLocation(doctor.Location{Latitude: f.lat, Longitude: f.lon, Name: "Custom location"})
				providers, err = session.Search(ctx, criteria)
			default:
				providers, err = session.Search(ctx, criteria)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", gray("Location:"), session.Location().Name)
			if len(providers) == 0 {
				fmt.Fprintln(out, yellow("No doctors found. Try expanding your search radius or changing filters."))
				return nil
			}
			fmt.Fprintln(out, green(fmt.Sprintf("Found %d doctors", len(providers))))
			for _, p := range providers {
				fmt.Fprintf(out, "%s  %s  %s  %s  %s\n",
					bold(p.Name),
					cyan(p.Specialty),
					yellow(fmt.Sprintf("%.1f★", p.Rating)),
					fmt.Sprintf("%.1f km", p.Distance),
					gray(p.ID),
				)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.specialty, "specialty", "", "specialty, e.g. Cardiology")
	flags.Float64Var(&f.maxDistance, "max-distance", doctor.DefaultMaxDistance, "search radius in km")
	flags.Float64Var(&f.minRating, "min-rating", 0, "minimum rating")
	flags.StringVar(&f.term, "term", "", "free-text filter over name, hospital, address and bio")
	flags.StringVar(&f.city, "city", "", "search around a known city: "+strings.Join(doctor.CityNames(), ", "))
	flags.Float64Var(&f.lat, "lat", doctor.DefaultLatitude, "latitude")
	flags.Float64Var(&f.lon, "lon", doctor.DefaultLongitude, "longitude")
	return cmd
}

func newDoctorShowCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one doctor's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			p, err := c.client().DoctorDetails(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s  %s\n", bold(p.Name), cyan(p.Specialty), yellow(fmt.Sprintf("%.1f★ (%d reviews)", p.Rating, p.ReviewCount)))
			fmt.Fprintf(out, "%s %s\n", gray("Hospital:"), p.Hospital)
			fmt.Fprintf(out, "%s %s\n", gray("Address:"), p.Address)
			fmt.Fprintf(out, "%s %d years\n", gray("Experience:"), p.ExperienceYears)
			fmt.Fprintf(out, "%s ₹%d\n", gray("Fee:"), p.ConsultationFee)
			fmt.Fprintf(out, "%s %s\n", gray("Availability:"), p.Availability)
			fmt.Fprintf(out, "%s %s\n", gray("Education:"), p.Education)
			fmt.Fprintf(out, "%s %s\n", gray("Languages:"), strings.Join(p.Languages, ", "))
			fmt.Fprintf(out, "%s %s\n", gray("Services:"), strings.Join(p.Services, ", "))
			fmt.Fprintf(out, "%s %s\n", gray("Call:"), doctor.TelURL(p.Phone))
			fmt.Fprintf(out, "%s %s\n", gray("Directions:"), doctor.DirectionsURL(p.Latitude, p.Longitude))
			fmt.Fprintln(out, p.Bio)
			return nil
		},
	}
}
