package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tutorhive/backend/internal/auth"
	"github.com/tutorhive/backend/internal/bookings"
	"github.com/tutorhive/backend/internal/document"
	"github.com/tutorhive/backend/internal/materials"
	"github.com/tutorhive/backend/internal/notes"
	"github.com/tutorhive/backend/internal/ratings"
	"github.com/tutorhive/backend/internal/sessions"
	"github.com/tutorhive/backend/internal/users"
	"go.uber.org/zap"
)

// accessTokenHeader is the request header carrying the bearer token. The
// non-standard name is load-bearing: existing clients send exactly this.
const accessTokenHeader = "accesstoken"

const claimsContextKey = "tutorhive_claims"

var (
	errMissingTokenCodec       = errors.New("token codec dependency required")
	errMissingUsersService     = errors.New("users service dependency required")
	errMissingSessionsService  = errors.New("sessions service dependency required")
	errMissingMaterialsService = errors.New("materials service dependency required")
	errMissingBookingsService  = errors.New("bookings service dependency required")
	errMissingNotesService     = errors.New("notes service dependency required")
	errMissingRatingsService   = errors.New("ratings service dependency required")
)

// TokenCodec signs and verifies the access tokens used by the gates.
type TokenCodec interface {
	Sign(claims auth.Claims) (string, error)
	Verify(token string) (auth.Claims, error)
}

// Dependencies collects everything the HTTP surface needs. Handlers hold no
// state of their own; the store connection behind the services is the only
// thing that outlives a request.
type Dependencies struct {
	TokenCodec TokenCodec
	Users      *users.Service
	Sessions   *sessions.Service
	Materials  *materials.Service
	Bookings   *bookings.Service
	Notes      *notes.Service
	Ratings    *ratings.Service
	Logger     *zap.Logger
}

// NewHTTPHandler validates dependencies and assembles the router.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.TokenCodec == nil {
		return nil, errMissingTokenCodec
	}
	if deps.Users == nil {
		return nil, errMissingUsersService
	}
	if deps.Sessions == nil {
		return nil, errMissingSessionsService
	}
	if deps.Materials == nil {
		return nil, errMissingMaterialsService
	}
	if deps.Bookings == nil {
		return nil, errMissingBookingsService
	}
	if deps.Notes == nil {
		return nil, errMissingNotesService
	}
	if deps.Ratings == nil {
		return nil, errMissingRatingsService
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", accessTokenHeader},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		tokens:    deps.TokenCodec,
		users:     deps.Users,
		sessions:  deps.Sessions,
		materials: deps.Materials,
		bookings:  deps.Bookings,
		notes:     deps.Notes,
		ratings:   deps.Ratings,
		logger:    logger,
	}

	router.GET("/", handler.handleLiveness)
	router.GET("/test", handler.handleEchoQuery)
	router.POST("/jwt", handler.handleIssueToken)

	router.GET("/user/:email", handler.handleGetUser)
	router.GET("/users", handler.handleListUsers)
	router.POST("/users", handler.handleRegisterUser)
	router.PATCH("/user/:id", handler.requireAuth, handler.requireRole(auth.RoleAdmin), handler.handleUpdateUser)

	router.GET("/study-session", handler.handleListSessions)
	router.GET("/study-session/:id", handler.handleGetSession)
	router.POST("/study-session", handler.requireAuth, handler.requireRole(auth.RoleTutor), handler.handleCreateSession)
	router.PATCH("/study-session/:id", handler.requireAuth, handler.handleUpdateSession)
	router.DELETE("/study-session/:id", handler.requireAuth, handler.requireRole(auth.RoleAdmin), handler.handleDeleteSession)

	router.GET("/booked-sessions", handler.handleGetBooking)
	router.GET("/booked-sessions/:email", handler.handleListBookings)
	router.POST("/booked-sessions", handler.handleCreateBooking)

	router.GET("/session-materials", handler.requireAuth, handler.handleListMaterials)
	router.GET("/session-materials/:id", handler.handleGetMaterial)
	router.GET("/view-materials", handler.handleListSessionMaterials)
	router.POST("/session-materials", handler.requireAuth, handler.requireRole(auth.RoleTutor), handler.handleCreateMaterial)
	router.PATCH("/session-materials/:id", handler.requireAuth, handler.requireRole(auth.RoleTutor), handler.handleUpdateMaterial)
	router.DELETE("/session-materials/:id", handler.requireAuth, handler.handleDeleteMaterial)

	router.GET("/notes/:email", handler.requireAuth, handler.handleListNotes)
	router.POST("/create-note", handler.requireAuth, handler.handleCreateNote)
	router.PATCH("/notes/:id", handler.requireAuth, handler.handleUpdateNote)
	router.DELETE("/notes/:id", handler.requireAuth, handler.handleDeleteNote)

	router.GET("/ratings/:id", handler.handleListRatings)
	router.POST("/ratings", handler.requireAuth, handler.handleCreateRating)

	return router, nil
}

type httpHandler struct {
	tokens    TokenCodec
	users     *users.Service
	sessions  *sessions.Service
	materials *materials.Service
	bookings  *bookings.Service
	notes     *notes.Service
	ratings   *ratings.Service
	logger    *zap.Logger
}

// requireAuth reads the access token and terminates the request when it is
// absent (401) or fails verification (403). The 403-for-invalid choice
// mirrors what deployed clients already expect.
func (h *httpHandler) requireAuth(c *gin.Context) {
	token := c.GetHeader(accessTokenHeader)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
		return
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		h.logger.Warn("token verification failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
		return
	}

	c.Set(claimsContextKey, claims)
	c.Next()
}

// requireRole runs after requireAuth and terminates with 403 on any role
// mismatch. Both role gates share this one implementation, so the tutor and
// admin checks cannot drift apart.
func (h *httpHandler) requireRole(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(claimsContextKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}
		claims, ok := value.(auth.Claims)
		if !ok || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}
		c.Next()
	}
}

func (h *httpHandler) handleLiveness(c *gin.Context) {
	c.String(http.StatusOK, "Tutorhive server is running")
}

func (h *httpHandler) handleEchoQuery(c *gin.Context) {
	c.JSON(http.StatusOK, c.Request.URL.Query())
}

func (h *httpHandler) handleIssueToken(c *gin.Context) {
	var doc document.Fields
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	role, err := auth.ParseRole(doc.String("role"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
		return
	}

	token, err := h.tokens.Sign(auth.Claims{
		Email:       doc.String("email"),
		Role:        role,
		DisplayName: doc.String("displayName"),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// internalError hides store failures behind a generic 500. The cause is
// logged, never returned to the client.
func (h *httpHandler) internalError(c *gin.Context, message string, err error) {
	h.logger.Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}

func bindDocument(c *gin.Context) (document.Fields, bool) {
	var doc document.Fields
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return nil, false
	}
	return doc, true
}
