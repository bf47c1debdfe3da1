package main

import (
	"context"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dentalcare/dentalcare/internal/domain/doctor"
	"github.com/dentalcare/dentalcare/internal/domain/treatment"
	"github.com/dentalcare/dentalcare/internal/domain/user"
)

var slotTemplate = []string{
	"08:00 - 09:00",
	"09:00 - 10:00",
	"10:00 - 11:00",
	"11:00 - 12:00",
	"13:00 - 14:00",
	"14:00 - 15:00",
	"15:00 - 16:00",
}

var treatmentNames = []string{
	"Teeth Cleaning",
	"Teeth Whitening",
	"Cavity Filling",
	"Root Canal",
	"Tooth Extraction",
	"Dental Checkup",
}

var specialties = []string{
	"General Dentistry",
	"Orthodontics",
	"Periodontics",
	"Endodontics",
	"Oral Surgery",
}

func seedCmd() *cobra.Command {
	var doctors int
	var adminEmail string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
				return runSeed(ctx, pool, logger, doctors, adminEmail)
			})
		},
	}
	cmd.Flags().IntVar(&doctors, "doctors", 5, "number of doctors to generate")
	cmd.Flags().StringVar(&adminEmail, "admin", "", "email to create as an admin user")
	return cmd
}

func runSeed(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger, doctors int, adminEmail string) error {
	treatmentRepo := treatment.NewRepoPG(pool)
	doctorRepo := doctor.NewRepoPG(pool)
	userRepo := user.NewRepoPG(pool)

	for _, name := range treatmentNames {
		if _, err := treatmentRepo.GetByName(ctx, name); err == nil {
			continue
		}
		t := &treatment.Treatment{
			Name:  name,
			Price: gofakeit.Price(30, 300),
			Slots: slotTemplate,
		}
		if err := treatmentRepo.Create(ctx, t); err != nil {
			return err
		}
		logger.Info().Str("treatment", name).Float64("price", t.Price).Msg("seeded treatment")
	}

	for i := 0; i < doctors; i++ {
		d := &doctor.Doctor{
			Name:      "Dr. " + gofakeit.Name(),
			Specialty: specialties[gofakeit.Number(0, len(specialties)-1)],
			Slots:     slotTemplate,
		}
		if err := doctorRepo.Create(ctx, d); err != nil {
			return err
		}
		logger.Info().Str("doctor", d.Name).Str("specialty", d.Specialty).Msg("seeded doctor")
	}

	if adminEmail != "" {
		if _, err := userRepo.Upsert(ctx, adminEmail); err != nil {
			return err
		}
		if err := userRepo.SetRole(ctx, adminEmail, user.RoleAdmin); err != nil {
			return err
		}
		logger.Info().Str("email", adminEmail).Msg("seeded admin user")
	}

	return nil
}
