package sandboxapi

import (
	"io"
	"mime"
	"mime/multipart"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/account/billing"
	"github.com/Abraxas-365/aikyuu/account/profile"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
	"github.com/Abraxas-365/aikyuu/sandbox"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxauth"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxsrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *sandboxsrv.Service
}

func NewHandlers(service *sandboxsrv.Service) *Handlers {
	return &Handlers{service: service}
}

func (h *Handlers) RegisterRoutes(app *fiber.App, tokens *sandboxauth.TokenService) {
	authGroup := app.Group("/v1/auth")
	authGroup.Post("/login", h.Login)
	authGroup.Post("/signup", h.Signup)
	authGroup.Post("/verify", h.Verify)
	authGroup.Post("/forgot-password", h.ForgotPassword)
	authGroup.Post("/reset-password", h.ResetPassword)

	v1 := app.Group("/v1", sandboxauth.Middleware(tokens))

	v1.Get("/positions", h.ListPositions)
	v1.Post("/positions", h.CreatePosition)
	v1.Get("/positions/:id", h.GetPosition)
	v1.Put("/positions/:id", h.UpdatePosition)
	v1.Delete("/positions/:id", h.DeletePosition)
	v1.Post("/positions/:id/duplicate", h.DuplicatePosition)

	v1.Get("/positions/:id/criterias", h.ListCriteria)
	v1.Post("/positions/:id/criterias", h.AddCriteria)
	v1.Delete("/criterias/:id", h.DeleteCriteria)

	v1.Get("/positions/:id/resumes", h.ListResumes)
	v1.Post("/positions/:id/resumes", h.UploadResume)
	v1.Delete("/resumes/:id", h.DeleteResume)
	v1.Get("/resumes/:id/file", h.ResumeFile)

	v1.Post("/positions/:id/process", h.StartProcessing)
	v1.Get("/positions/:id/analysis", h.Session)

	v1.Get("/user/profile", h.Profile)
	v1.Post("/user/change-password", h.ChangePassword)
	v1.Post("/user/photo", h.UploadPhoto)
	v1.Post("/user/feedback", h.Feedback)
	v1.Get("/user/pointsCharges/history", h.BillingHistory)
	v1.Post("/user/pointsCharges/buy", h.Buy)
}

// ============================================================================
// Helpers
// ============================================================================

func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return sandbox.ErrInvalidInput("Invalid request body").WithDetail("error", err.Error())
	}
	return nil
}

func caller(c *fiber.Ctx) (kernel.UserID, error) {
	id, ok := sandboxauth.UserID(c)
	if !ok {
		return "", sandbox.ErrUnauthorized()
	}
	return id, nil
}

func pagination(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		PageNumber: c.QueryInt("pageNumber", 0),
		PageSize:   c.QueryInt("pageSize", kernel.DefaultPageSize),
	}.Normalize()
}

func readUpload(c *fiber.Ctx) (*resume.File, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, sandbox.ErrInvalidInput("file is required")
	}
	data, err := readAll(header)
	if err != nil {
		return nil, sandbox.ErrInvalidInput("could not read uploaded file").WithDetail("error", err.Error())
	}
	return &resume.File{
		Name:        header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

func readAll(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ============================================================================
// Auth Handlers
// ============================================================================

// Login - POST /v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.SignInRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Signup - POST /v1/auth/signup
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req auth.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.service.Signup(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Verify - POST /v1/auth/verify
func (h *Handlers) Verify(c *fiber.Ctx) error {
	var req auth.VerifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.service.Verify(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ForgotPassword - POST /v1/auth/forgot-password
func (h *Handlers) ForgotPassword(c *fiber.Ctx) error {
	var req auth.ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.service.ForgotPassword(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResetPassword - POST /v1/auth/reset-password
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	var req auth.ResetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.service.ResetPassword(c.Context(), req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================================
// Position Handlers
// ============================================================================

func (h *Handlers) ListPositions(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListPositions(c.Context(), userID, pagination(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *Handlers) GetPosition(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	p, err := h.service.GetPosition(c.Context(), userID, kernel.NewPositionID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handlers) CreatePosition(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	var req position.CreatePositionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.service.CreatePosition(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *Handlers) UpdatePosition(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	var req position.UpdatePositionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.service.UpdatePosition(c.Context(), userID, kernel.NewPositionID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handlers) DeletePosition(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.DeletePosition(c.Context(), userID, kernel.NewPositionID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) DuplicatePosition(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	p, err := h.service.DuplicatePosition(c.Context(), userID, kernel.NewPositionID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// ============================================================================
// Criteria Handlers
// ============================================================================

func (h *Handlers) ListCriteria(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListCriteria(c.Context(), userID, kernel.NewPositionID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *Handlers) AddCriteria(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	var req criteria.CreateCriteriaRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.service.AddCriteria(c.Context(), userID, kernel.NewPositionID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handlers) DeleteCriteria(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteCriteria(c.Context(), userID, kernel.NewCriteriaID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================================
// Resume Handlers
// ============================================================================

func (h *Handlers) ListResumes(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListResumes(c.Context(), userID, kernel.NewPositionID(c.Params("id")), pagination(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// UploadResume - POST /v1/positions/:id/resumes (multipart, field "file")
func (h *Handlers) UploadResume(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	file, err := readUpload(c)
	if err != nil {
		return err
	}
	created, err := h.service.UploadResume(c.Context(), userID, kernel.NewPositionID(c.Params("id")), *file)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handlers) DeleteResume(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteResume(c.Context(), userID, kernel.NewResumeID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) ResumeFile(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	file, err := h.service.ResumeFile(c.Context(), userID, kernel.NewResumeID(c.Params("id")))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, file.DetectContentType())
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	return c.Send(file.Data)
}

// ============================================================================
// Analysis Handlers
// ============================================================================

func (h *Handlers) StartProcessing(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.StartProcessing(c.Context(), userID, kernel.NewPositionID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *Handlers) Session(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	sess, err := h.service.Session(c.Context(), userID, kernel.NewPositionID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(sess)
}

// ============================================================================
// User Handlers
// ============================================================================

func (h *Handlers) Profile(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	p, err := h.service.Profile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *Handlers) ChangePassword(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	var body profile.ChangePasswordBody
	if err := bind(c, &body); err != nil {
		return err
	}
	if err := h.service.ChangePassword(c.Context(), userID, body); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) UploadPhoto(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	file, err := readUpload(c)
	if err != nil {
		return err
	}
	photo, err := h.service.UploadPhoto(c.Context(), userID, file.Data)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

func (h *Handlers) Feedback(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	var req profile.FeedbackRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.service.SubmitFeedback(c.Context(), userID, req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) BillingHistory(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	page, err := h.service.BillingHistory(c.Context(), userID, pagination(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *Handlers) Buy(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	var req billing.PurchaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	purchase, err := h.service.Buy(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(purchase)
}
