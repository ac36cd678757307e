package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"devconnect/internal/domain"
	"devconnect/internal/repository"
	"devconnect/internal/service"
	"devconnect/internal/token"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	profiles  service.ProfileService
	directory service.DirectoryService
	posts     service.PostService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewHandler(users service.UserService, profiles service.ProfileService, directory service.DirectoryService, posts service.PostService, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{
		users:     users,
		profiles:  profiles,
		directory: directory,
		posts:     posts,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/users", h.register)
		api.POST("/auth", h.login)
		api.GET("/auth", h.requireAuth, h.currentUser)

		api.GET("/profile", h.listProfiles)
		api.GET("/profile/search", h.searchProfiles)
		api.GET("/profile/user/:user_id", h.getProfileByUser)
		api.GET("/profile/me", h.requireAuth, h.myProfile)
		api.POST("/profile", h.requireAuth, h.upsertProfile)
		api.DELETE("/profile", h.requireAuth, h.deleteAccount)

		api.POST("/posts", h.requireAuth, h.createPost)
		api.GET("/posts", h.requireAuth, h.listMyPosts)

		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	signed, err := token.Issue(user.ID, h.jwtSecret, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": signed})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	signed, err := token.Issue(user.ID, h.jwtSecret, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": signed})
}

func (h *Handler) currentUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), actingUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

type upsertProfileRequest struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	Status         *string `json:"status"`
	GithubUsername *string `json:"github_username"`
	Skills         *string `json:"skills"`
	YouTube        *string `json:"youtube"`
	LinkedIn       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (h *Handler) upsertProfile(c *gin.Context) {
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	profile, err := h.profiles.Upsert(c.Request.Context(), actingUserID(c), domain.ProfileUpdate{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		YouTube:        req.YouTube,
		LinkedIn:       req.LinkedIn,
		Instagram:      req.Instagram,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToResponse(*profile))
}

func (h *Handler) myProfile(c *gin.Context) {
	view, err := h.directory.GetProfileWithOwner(c.Request.Context(), actingUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewToResponse(*view))
}

func (h *Handler) listProfiles(c *gin.Context) {
	views, err := h.directory.ListAllWithOwners(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewsToResponse(views))
}

func (h *Handler) searchProfiles(c *gin.Context) {
	views, err := h.directory.SearchWithOwners(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewsToResponse(views))
}

func (h *Handler) getProfileByUser(c *gin.Context) {
	view, err := h.directory.GetProfileWithOwner(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewToResponse(*view))
}

func (h *Handler) deleteAccount(c *gin.Context) {
	if err := h.directory.DeleteAccount(c.Request.Context(), actingUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "user and profile deleted"})
}

type createPostRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	author, err := h.users.GetByID(c.Request.Context(), actingUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), author, req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) listMyPosts(c *gin.Context) {
	posts, err := h.posts.ListByAuthor(c.Request.Context(), actingUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(posts[i])
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps domain failures onto the boundary contract. Password
// material never appears in any payload.
func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": vErr.Fields})
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func bindingErrors(err error) []domain.FieldError {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return []domain.FieldError{{Field: "body", Message: err.Error()}}
	}

	fields := make([]domain.FieldError, len(vErrs))
	for i, fe := range vErrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fe.Field() + " is required"
		case "email":
			msg = "a valid email is required"
		case "min":
			msg = fe.Field() + " must be at least " + fe.Param() + " characters"
		default:
			msg = fe.Field() + " is invalid"
		}
		fields[i] = domain.FieldError{Field: fe.Field(), Message: msg}
	}
	return fields
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar"`
	CreatedAt string `json:"created_at"`
}

type SocialResponse struct {
	YouTube   string `json:"youtube,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type ProfileResponse struct {
	UserID         string         `json:"user_id"`
	Company        string         `json:"company,omitempty"`
	Website        string         `json:"website,omitempty"`
	Location       string         `json:"location,omitempty"`
	Bio            string         `json:"bio,omitempty"`
	Status         string         `json:"status"`
	GithubUsername string         `json:"github_username,omitempty"`
	Skills         []string       `json:"skills"`
	Social         SocialResponse `json:"social"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

type ProfileWithOwnerResponse struct {
	ProfileResponse
	OwnerName   string `json:"owner_name"`
	OwnerAvatar string `json:"owner_avatar"`
}

type PostResponse struct {
	ID           string `json:"id"`
	AuthorID     string `json:"author_id"`
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar"`
	Text         string `json:"text"`
	CreatedAt    string `json:"created_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func profileToResponse(profile domain.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:         profile.UserID,
		Company:        profile.Company,
		Website:        profile.Website,
		Location:       profile.Location,
		Bio:            profile.Bio,
		Status:         profile.Status,
		GithubUsername: profile.GithubUsername,
		Skills:         profile.Skills,
		Social: SocialResponse{
			YouTube:   profile.Social.YouTube,
			LinkedIn:  profile.Social.LinkedIn,
			Instagram: profile.Social.Instagram,
		},
		CreatedAt: profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt: profile.UpdatedAt.Format(time.RFC3339),
	}
}

func viewToResponse(view domain.ProfileWithOwner) ProfileWithOwnerResponse {
	return ProfileWithOwnerResponse{
		ProfileResponse: profileToResponse(view.Profile),
		OwnerName:       view.OwnerName,
		OwnerAvatar:     view.OwnerAvatar,
	}
}

func viewsToResponse(views []domain.ProfileWithOwner) []ProfileWithOwnerResponse {
	resp := make([]ProfileWithOwnerResponse, len(views))
	for i := range views {
		resp[i] = viewToResponse(views[i])
	}
	return resp
}

func postToResponse(post domain.Post) PostResponse {
	return PostResponse{
		ID:           post.ID,
		AuthorID:     post.AuthorID,
		AuthorName:   post.AuthorName,
		AuthorAvatar: post.AuthorAvatar,
		Text:         post.Text,
		CreatedAt:    post.CreatedAt.Format(time.RFC3339),
	}
}
