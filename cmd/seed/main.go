package main

import (
	"context"
	"errors"
	"os"

	"brokerage/internal/database"
	"brokerage/internal/lock"
	"brokerage/internal/logger"
	"brokerage/internal/modules/catalog"
	"brokerage/internal/modules/contact"
	"brokerage/internal/modules/rental"
	"brokerage/internal/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New("info", "console", "brokerage-seed")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "brokerage.db"
	}

	db, err := database.Connect(dsn, log)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	store := repository.NewStore(db)
	props := catalog.NewService(store.Properties(), "ARS", log)
	rentals := rental.NewService(store, props, lock.NewLocalLocker(lock.DefaultWait), "ARS", log)
	contacts := contact.NewService(store, props, rentals, log)
	ctx := context.Background()

	// ================== PROPERTIES ==================
	log.Info("creating properties...")
	properties := []catalog.CreatePropertyRequest{
		{Code: "P1", Title: "Departamento 2 ambientes centro", Address: "Calle 7 1234", City: "La Plata",
			Kind: "apartment", Operation: "rent", BasePrice: 350000, DiscountPct: 10},
		{Code: "P2", Title: "Casa 3 dormitorios con parque", Address: "Camino Belgrano 455", City: "City Bell",
			Kind: "house", Operation: "sale", BasePrice: 145000, Currency: "USD"},
		{Code: "P3", Title: "Local comercial sobre avenida", Address: "Av. 44 890", City: "La Plata",
			Kind: "commercial", Operation: "rent", BasePrice: 600000, SurchargePct: 5},
	}
	for _, req := range properties {
		if _, err := props.CreateProperty(ctx, req); err != nil && !errors.Is(err, catalog.ErrDuplicateCode) {
			log.Fatal("create property", zap.String("code", req.Code), zap.Error(err))
		}
	}

	// ================== CONSULTATIONS ==================
	log.Info("creating consultations...")
	consultations := []contact.SubmitConsultationRequest{
		{Name: "Lucia Gomez", Phone: "+54 221 123 4567", Email: "lucia.gomez@example.com",
			Message: "Me interesa el departamento, sigue disponible?", Property: &contact.PropertyRef{Code: "P1"}},
		{Name: "Martin Perez", Phone: "+54 221 765 4321", Type: "visit",
			Message: "Quisiera visitar la casa el sabado", Property: &contact.PropertyRef{Code: "P2"}},
		{Name: "Carla Diaz", Email: "carla.diaz@example.com", Type: "appraisal",
			Message: "Necesito tasar un PH en Tolosa"},
	}
	var first *contact.ConsultationResult
	for i, req := range consultations {
		res, err := contacts.SubmitConsultation(ctx, req)
		if err != nil {
			log.Fatal("submit consultation", zap.String("name", req.Name), zap.Error(err))
		}
		if i == 0 {
			first = res
		}
	}

	// ================== CONVERSIONS ==================
	log.Info("converting contacts...")
	_, err = contacts.Convert(ctx, contact.ConvertRequest{
		ConsultationID: &first.Consultation.ID,
		Target:         "tenant",
		Tenant: &contact.TenantTerms{
			Property:      contact.PropertyRef{Code: "P1"},
			StartDate:     "2025-01-01",
			EndDate:       "2025-06-01",
			MonthlyAmount: 315000,
		},
	})
	logSkip(log, "tenant conversion", err)

	_, err = contacts.Convert(ctx, contact.ConvertRequest{
		Candidate: &contact.CandidateRequest{FirstName: "Jorge", LastName: "Alvarez", Phone: "+54 221 555 0101"},
		Target:    "owner",
		Owner:     &contact.OwnerTerms{Properties: []contact.PropertyRef{{Code: "P2"}, {Code: "P3"}}},
	})
	logSkip(log, "owner conversion", err)

	log.Info("seed completed")
}

// logSkip tolerates re-running the seed against an already seeded database.
func logSkip(log *zap.Logger, what string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, contact.ErrInvalidTransition), errors.Is(err, rental.ErrUnavailable):
		log.Info(what+" already applied", zap.Error(err))
	default:
		log.Fatal(what, zap.Error(err))
	}
}
