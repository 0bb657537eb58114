package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hoteldesk/internal/config"
	"hoteldesk/internal/database"
	"hoteldesk/internal/events"
	"hoteldesk/internal/middleware"
	"hoteldesk/internal/modules/auth"
	"hoteldesk/internal/modules/availability"
	"hoteldesk/internal/modules/booking"
	"hoteldesk/internal/modules/ledger"
	"hoteldesk/internal/modules/roomstatus"
	jwtsvc "hoteldesk/internal/pkg/jwt"
	"hoteldesk/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	staffRepo := repository.NewStaffUserRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := events.NewHub()

	authService := auth.NewService(staffRepo, j)
	authHandler := auth.NewHandler(authService)

	availabilityService := availability.NewService(roomRepo, bookingRepo)
	availabilityHandler := availability.NewHandler(availabilityService)

	bookingService := booking.NewService(bookingRepo, roomRepo, guestRepo, hub, cfg)
	bookingHandler := booking.NewHandler(bookingService)

	ledgerService := ledger.NewService(paymentRepo, bookingRepo, hub)
	ledgerHandler := ledger.NewHandler(ledgerService)

	roomStatusService := roomstatus.NewService(roomRepo, bookingRepo, auditRepo, hub, cfg)
	roomStatusHandler := roomstatus.NewHandler(roomStatusService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			// any authenticated staff
			availabilityHandler.RegisterRoutes(protected)
			roomStatusHandler.RegisterRoutes(protected)
			protected.GET("/events/ws", hub.ServeWS)

			desk := protected.Group("/")
			desk.Use(middleware.RequireRole("Admin", "Manager", "Receptionist"))
			{
				bookingHandler.RegisterRoutes(desk)
			}

			money := protected.Group("/")
			money.Use(middleware.RequireRole("Admin", "Manager", "Receptionist", "Accountant"))
			{
				ledgerHandler.RegisterRoutes(money)
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
