package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	cartapp "github.com/muhammadheryan/eyewear-store/application/cart"
	checkoutapp "github.com/muhammadheryan/eyewear-store/application/checkout"
	educationapp "github.com/muhammadheryan/eyewear-store/application/education"
	orderapp "github.com/muhammadheryan/eyewear-store/application/order"
	productapp "github.com/muhammadheryan/eyewear-store/application/product"
	tryonapp "github.com/muhammadheryan/eyewear-store/application/tryon"
	userapp "github.com/muhammadheryan/eyewear-store/application/user"
	wishlistapp "github.com/muhammadheryan/eyewear-store/application/wishlist"
	"github.com/muhammadheryan/eyewear-store/repository/kv"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp      userapp.UserApp
	ProductApp   productapp.ProductApp
	EducationApp educationapp.EducationApp
	CartApp      cartapp.CartApp
	WishlistApp  wishlistapp.WishlistApp
	OrderApp     orderapp.OrderApp
	CheckoutApp  checkoutapp.CheckoutApp
	TryOnApp     tryonapp.TryOnApp
	Store        kv.Store
}

// Options are the settings the transport needs beyond the applications.
type Options struct {
	InternalAPIKey string
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 10 << 20

func NewTransport(rh *RestHandler, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	uploads := uploadLimit(opts.MaxUploadBytes)

	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// auth
	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/otp/send", rh.SendOTP).Methods(http.MethodPost)
	mux.HandleFunc("/otp/verify", rh.VerifyOTP).Methods(http.MethodPost)
	mux.HandleFunc("/logout", rh.Logout).Methods(http.MethodPost)
	mux.HandleFunc("/me", rh.GetMe).Methods(http.MethodGet)
	mux.HandleFunc("/me", rh.UpdateMe).Methods(http.MethodPut)

	// catalogue
	mux.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	mux.HandleFunc("/products/{id}", rh.GetProduct).Methods(http.MethodGet)
	mux.HandleFunc("/categories", rh.ListCategories).Methods(http.MethodGet)
	mux.HandleFunc("/categories/{id}", rh.GetCategory).Methods(http.MethodGet)
	mux.HandleFunc("/education", rh.ListEducation).Methods(http.MethodGet)
	mux.HandleFunc("/education/{id}", rh.GetEducation).Methods(http.MethodGet)

	// cart and wishlist
	mux.HandleFunc("/cart", rh.GetCart).Methods(http.MethodGet)
	mux.HandleFunc("/cart", rh.ClearCart).Methods(http.MethodDelete)
	mux.Handle("/cart/items", uploads(http.HandlerFunc(rh.AddCartItem))).Methods(http.MethodPost)
	mux.HandleFunc("/cart/items", rh.UpdateCartItem).Methods(http.MethodPut)
	mux.HandleFunc("/cart/items", rh.RemoveCartItem).Methods(http.MethodDelete)
	mux.HandleFunc("/wishlist", rh.GetWishlist).Methods(http.MethodGet)
	mux.HandleFunc("/wishlist/{productId}", rh.ToggleWishlist).Methods(http.MethodPost)

	// checkout
	mux.HandleFunc("/checkout", rh.StartCheckout).Methods(http.MethodPost)
	mux.HandleFunc("/checkout", rh.GetCheckout).Methods(http.MethodGet)
	mux.HandleFunc("/checkout", rh.LeaveCheckout).Methods(http.MethodDelete)
	mux.HandleFunc("/checkout/details", rh.SubmitCheckoutDetails).Methods(http.MethodPost)
	mux.HandleFunc("/checkout/payment", rh.SelectCheckoutPayment).Methods(http.MethodPost)
	mux.Handle("/checkout/proof", uploads(http.HandlerFunc(rh.AttachCheckoutProof))).Methods(http.MethodPost)
	mux.HandleFunc("/checkout/submit", rh.SubmitCheckoutProof).Methods(http.MethodPost)
	mux.HandleFunc("/checkout/cancel", rh.CancelCheckoutVerification).Methods(http.MethodPost)

	// orders
	mux.HandleFunc("/orders", rh.ListMyOrders).Methods(http.MethodGet)

	// try-on
	mux.HandleFunc("/tryon", rh.GetTryOn).Methods(http.MethodGet)
	mux.HandleFunc("/tryon", rh.ResetTryOn).Methods(http.MethodDelete)
	mux.Handle("/tryon/photo", uploads(http.HandlerFunc(rh.UploadTryOnPhoto))).Methods(http.MethodPost)
	mux.HandleFunc("/tryon/transform", rh.UpdateTryOnTransform).Methods(http.MethodPut)
	mux.HandleFunc("/tryon/rotate", rh.RotateTryOn).Methods(http.MethodPost)
	mux.HandleFunc("/tryon/drag/{phase}", rh.DragTryOn).Methods(http.MethodPost)
	mux.HandleFunc("/tryon/background", rh.ToggleTryOnBackground).Methods(http.MethodPost)
	mux.HandleFunc("/tryon/leave", rh.LeaveTryOn).Methods(http.MethodPost)
	mux.HandleFunc("/tryon/{productId}/overlay", rh.GetTryOnOverlay).Methods(http.MethodGet)
	mux.HandleFunc("/tryon/{productId}/render", rh.RenderTryOn).Methods(http.MethodGet)

	// storage change notifications
	mux.HandleFunc("/events", rh.StreamEvents).Methods(http.MethodGet)

	// admin
	admin := mux.PathPrefix("/admin").Subrouter()
	admin.Use(AdminMiddleware(rh.UserApp))
	admin.HandleFunc("/dashboard", rh.AdminDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/products", rh.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", rh.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", rh.DeleteProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/education", rh.CreateEducation).Methods(http.MethodPost)
	admin.HandleFunc("/education/{id}", rh.UpdateEducation).Methods(http.MethodPut)
	admin.HandleFunc("/education/{id}", rh.DeleteEducation).Methods(http.MethodDelete)
	admin.HandleFunc("/orders", rh.AdminListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/verification-queue", rh.AdminVerificationQueue).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", rh.AdminUpdateOrderStatus).Methods(http.MethodPut)

	// internal
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(opts.InternalAPIKey))
	internal.HandleFunc("/order/{id}/verification-queue", rh.InternalEnqueueVerification).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(rh.UserApp))

	return mux
}

func uploadLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
