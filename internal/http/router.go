package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	intconfig "alhudha-backend/internal/config"
	h "alhudha-backend/internal/http/handlers"
	"alhudha-backend/internal/http/middleware"
	"alhudha-backend/internal/repositories"
	"alhudha-backend/internal/services"
	"alhudha-backend/internal/session"
)

const maxBodyBytes = 16 << 20

// NewRouter wires the full API surface plus static serving.
func NewRouter(env intconfig.Env, sessions *session.Store) *gin.Engine {
	r := gin.New()

	authSvc := services.AuthService{
		Users:      repositories.UserRepository{},
		Sessions:   sessions,
		SecretKey:  env.SecretKey,
		SessionTTL: env.SessionTTL,
	}
	auth := middleware.Auth{Sessions: sessions, Bearer: authSvc}

	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSOrigins),
		middleware.BodyLimit(maxBodyBytes),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logrus.WithError(err).Warn("failed to set trusted proxies")
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusOK) })

	authH := h.AuthHandler{
		Users:      repositories.UserRepository{},
		SecretKey:  env.SecretKey,
		SessionTTL: env.SessionTTL,
		Auth:       auth,
	}
	batchH := h.BatchHandler{}
	travelerH := h.TravelerHandler{Sessions: sessions, SessionTTL: env.SessionTTL}
	paymentH := h.PaymentHandler{}
	uploadH := h.UploadHandler{BasePath: env.UploadPath}
	companyH := h.CompanyHandler{}
	userH := h.UserHandler{}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// the auth-prefixed aliases and the bare /login resolve to the
		// same database-backed handler
		api.POST("/login", authH.Login)
		api.POST("/auth/login", authH.Login)
		api.POST("/auth/logout", authH.Logout)
		api.GET("/auth/me", auth.RequireAdmin(), authH.Me)

		batches := api.Group("/batches")
		{
			batches.GET("", batchH.List)
			batches.GET("/:id", batchH.Get)
			batches.POST("", auth.RequireAdmin(), batchH.Create)
			batches.PUT("/:id", auth.RequireAdmin(), batchH.Update)
			batches.DELETE("/:id", auth.RequireAdmin(), batchH.Delete)
		}

		travelers := api.Group("/travelers")
		{
			travelers.GET("", auth.OptionalAdmin(), travelerH.List)
			travelers.GET("/stats/summary", travelerH.StatsSummary)
			travelers.GET("/passport/:no", travelerH.GetByPassport)
			travelers.GET("/:id", travelerH.Get)
			travelers.POST("", auth.RequireAdmin(), travelerH.Create)
			travelers.PUT("/:id", auth.RequireAdmin(), travelerH.Update)
			travelers.DELETE("/:id", auth.RequireAdmin(), travelerH.Delete)
			travelers.POST("/login", travelerH.Login)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentH.List)
			payments.GET("/stats", paymentH.Stats)
			payments.GET("/traveler/:id", paymentH.ListByTraveler)
			payments.GET("/batch/:id", paymentH.ListByBatch)
			payments.GET("/:id", paymentH.Get)
			payments.GET("/:id/receipt", paymentH.Receipt)
			payments.GET("/:id/receipt/pdf", paymentH.ReceiptPDF)
			payments.POST("", auth.RequireAdmin(), paymentH.Create)
			payments.PUT("/:id", auth.RequireAdmin(), paymentH.Update)
			payments.POST("/:id/reverse", auth.RequireAdmin(), paymentH.Reverse)
		}

		uploads := api.Group("/uploads")
		{
			uploads.POST("", auth.RequireUploadSession(), uploadH.Upload)
			uploads.POST("/multiple", auth.RequireUploadSession(), uploadH.UploadMultiple)
			uploads.DELETE("/:filename", auth.RequireAdmin(), uploadH.Delete)
			uploads.GET("/traveler/:id", auth.RequireAdmin(), uploadH.TravelerSlots)
			uploads.POST("/cleanup", auth.RequireAdmin(), uploadH.Cleanup)
			uploads.GET("/file/:filename", uploadH.Download)
		}

		company := api.Group("/company")
		{
			company.GET("/settings", companyH.Get)
			company.POST("/settings", auth.RequireAdmin(), companyH.Update)
		}

		admin := api.Group("/admin", auth.RequireAdmin())
		{
			admin.GET("/users", userH.List)
			admin.POST("/users", userH.Create)
		}
	}

	static := h.StaticHandler{PublicPath: env.PublicPath, Auth: auth}
	r.NoRoute(static.Serve)

	return r
}
