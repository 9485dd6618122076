package server

import (
	"storefront-api/internal/handler"
	mw "storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	jwtSecret       string
	orderHandler    *handler.OrderHandler
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	wishlistHandler *handler.WishlistHandler
	addressHandler  *handler.AddressHandler
}

func NewServer(
	jwtSecret string,
	orderService service.OrderService,
	catalogService service.CatalogService,
	cartService service.CartService,
	wishlistService service.WishlistService,
	addressService service.AddressService,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		jwtSecret:       jwtSecret,
		orderHandler:    handler.NewOrderHandler(orderService),
		catalogHandler:  handler.NewCatalogHandler(catalogService),
		cartHandler:     handler.NewCartHandler(cartService),
		wishlistHandler: handler.NewWishlistHandler(wishlistService),
		addressHandler:  handler.NewAddressHandler(addressService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:id", s.catalogHandler.GetProduct)

	auth := mw.Auth(s.jwtSecret)

	// -------- order placement / payment workflow --------
	order := api.Group("/order", auth)
	order.GET("", s.orderHandler.GetOrders)
	order.POST("/place-order", s.orderHandler.PlaceOrder)
	order.POST("/verify-order", s.orderHandler.VerifyOrder)
	order.POST("/cancel-order", s.orderHandler.CancelOrder)

	cart := api.Group("/cart", auth)
	cart.GET("", s.cartHandler.GetCart)
	cart.POST("", s.cartHandler.AddToCart)
	cart.PATCH("/:id", s.cartHandler.UpdateCartItem)
	cart.DELETE("/:id", s.cartHandler.RemoveCartItem)

	wishlist := api.Group("/wishlist", auth)
	wishlist.GET("", s.wishlistHandler.GetWishlist)
	wishlist.POST("", s.wishlistHandler.AddToWishlist)
	wishlist.DELETE("/:productId", s.wishlistHandler.RemoveFromWishlist)

	address := api.Group("/address", auth)
	address.GET("", s.addressHandler.ListAddresses)
	address.POST("", s.addressHandler.CreateAddress)
	address.PUT("/:id", s.addressHandler.UpdateAddress)
	address.DELETE("/:id", s.addressHandler.DeleteAddress)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
