// backend/internal/platform/di/container.go
package di

import (
	"context"
	"log"
	"net/http"
	"time"

	"coliseum/internal/adapters/in/http/middleware"
	shop "coliseum/internal/adapters/in/http/shop"
	shopHandler "coliseum/internal/adapters/in/http/shop/handler"
	shopwebhook "coliseum/internal/adapters/in/http/shop/webhook"
	outfs "coliseum/internal/adapters/out/firestore"
	"coliseum/internal/adapters/out/gcs"
	"coliseum/internal/adapters/out/mail"
	"coliseum/internal/adapters/out/mercadopago"
	usecase "coliseum/internal/application/usecase"
	"coliseum/internal/platform/di/shared"
)

// Container wires shared infra into repositories, usecases and handlers.
type Container struct {
	Infra *shared.Infra

	ReconcileUC    *usecase.ReconcileUsecase
	CheckoutUC     *usecase.CheckoutUsecase
	ProductUC      *usecase.ProductUsecase
	NotificationUC *usecase.NotificationUsecase
	UploadUC       *usecase.UploadUsecase
}

// NewContainer builds the full dependency graph from shared infra.
func NewContainer(ctx context.Context) (*Container, error) {
	inf, err := shared.NewInfra(ctx)
	if err != nil {
		return nil, err
	}
	return NewContainerWithInfra(inf), nil
}

// NewContainerWithInfra wires usecases on top of an already-initialized Infra.
// Split out so tests can pass a hand-built Infra.
func NewContainerWithInfra(inf *shared.Infra) *Container {
	cfg := inf.Config

	// Repositories (Firestore)
	orderRepo := outfs.NewOrderRepositoryFS(inf.Firestore)
	productRepo := outfs.NewProductRepositoryFS(inf.Firestore)
	notificationRepo := outfs.NewNotificationRepositoryFS(inf.Firestore)

	// Mercado Pago
	mpClient := mercadopago.NewClient(cfg.MPBaseURL, inf.MPAccessToken, 5*time.Second)
	prefSvc := mercadopago.NewPreferenceService(mpClient, mercadopago.BackURLs{
		Success: cfg.BackURLSuccess,
		Failure: cfg.BackURLFailure,
		Pending: cfg.BackURLPending,
	}, cfg.NotificationURL, "")
	paymentLookup := mercadopago.NewPaymentLookupService(mpClient)

	// Mail (optional)
	var confirmationSender usecase.OrderConfirmationSender
	if cfg.SendGridAPIKey != "" {
		sg := mail.NewSendGridClient(cfg.SendGridAPIKey)
		confirmationSender = mail.NewOrderMailer(sg, cfg.MailFrom, "")
	} else {
		log.Printf("[di] SENDGRID_API_KEY is empty; order confirmation mail disabled")
	}

	// Image store (GCS)
	imageStore := &gcs.ProductImageRepositoryGCS{
		Client: inf.GCS,
		Bucket: inf.ProductImageBucket,
	}

	c := &Container{Infra: inf}
	c.ReconcileUC = usecase.NewReconcileUsecase(orderRepo, confirmationSender)
	c.CheckoutUC = usecase.NewCheckoutUsecase(orderRepo, prefSvc)
	c.ProductUC = usecase.NewProductUsecase(productRepo)
	c.NotificationUC = usecase.NewNotificationUsecase(notificationRepo, paymentLookup, c.ReconcileUC)
	c.UploadUC = usecase.NewUploadUsecase(imageStore)
	return c
}

// RegisterRoutes registers all storefront routes onto mux.
// Admin-only endpoints (order status, product create, upload) go through
// Firebase auth; the webhook and public reads do not.
func (c *Container) RegisterRoutes(mux *http.ServeMux) {
	if c == nil || mux == nil {
		return
	}

	adminAuth := &middleware.AdminAuth{FirebaseAuth: c.Infra.FirebaseAuth}

	productH := shopHandler.NewProductHandler(c.ProductUC)
	// POST create is admin-only; GET list stays public.
	productGuarded := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			adminAuth.Handler(productH).ServeHTTP(w, r)
			return
		}
		productH.ServeHTTP(w, r)
	})

	shop.Register(mux, shop.Deps{
		Product:     productGuarded,
		Checkout:    shopHandler.NewCheckoutHandler(c.CheckoutUC),
		OrderStatus: adminAuth.Handler(shopHandler.NewOrderStatusHandler(c.ReconcileUC)),
		Upload:      adminAuth.Handler(shopHandler.NewUploadHandler(c.UploadUC)),
		Webhook:     middleware.CORSOpen(shopwebhook.NewMercadoPagoHandler(c.NotificationUC)),
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// Handler returns the fully wired root handler (CORS + recover + routes).
func (c *Container) Handler() http.Handler {
	mux := http.NewServeMux()
	c.RegisterRoutes(mux)

	var h http.Handler = mux
	h = middleware.CORS(c.Infra.Config.AllowedOrigins)(h)
	h = middleware.Recover(h)
	return h
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.Infra.Close()
}
