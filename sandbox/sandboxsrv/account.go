package sandboxsrv

import (
	"context"
	"net/mail"
	"strings"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/account/billing"
	"github.com/Abraxas-365/aikyuu/account/profile"
	"github.com/Abraxas-365/aikyuu/internal/pdf"
	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/formx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/sandbox"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxauth"
)

// ============================================================================
// Authentication
// ============================================================================

func normalizeEmail(email string) kernel.Email {
	return kernel.Email(strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) Login(ctx context.Context, req auth.SignInRequest) (*auth.LoginResponse, error) {
	if err := formx.Validate(req).Err(); err != nil {
		return nil, err
	}

	account, err := s.repo.GetAccountByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errx.IsCode(err, sandbox.CodeEmailNotFound) {
			return nil, sandbox.ErrInvalidCredentials()
		}
		return nil, err
	}
	if !sandboxauth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, sandbox.ErrInvalidCredentials()
	}
	if !account.Verified {
		return nil, sandbox.ErrNotVerified()
	}
	return s.issue(account)
}

func (s *Service) issue(account *sandbox.Account) (*auth.LoginResponse, error) {
	token, err := s.tokens.Generate(account.ID, account.Email)
	if err != nil {
		return nil, err
	}
	return &auth.LoginResponse{AccessToken: token, Email: account.Email}, nil
}

// Signup creates an unverified account and sends its verification code.
// Signing up again with an unverified email replaces the pending account.
func (s *Service) Signup(ctx context.Context, req auth.SignupRequest) (*auth.VerificationResponse, error) {
	email := normalizeEmail(req.Email)
	switch {
	case strings.TrimSpace(req.Name) == "":
		return nil, sandbox.ErrInvalidInput("Name is required")
	case !validEmail(email):
		return nil, sandbox.ErrInvalidInput("Please enter a valid email address")
	case len(req.Password) < 6:
		return nil, sandbox.ErrInvalidInput("Password must be at least 6 characters")
	}

	hash, err := sandboxauth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetAccountByEmail(ctx, email)
	switch {
	case err == nil && existing.Verified:
		return nil, sandbox.ErrEmailTaken()
	case err == nil:
		existing.Name = strings.TrimSpace(req.Name)
		existing.PasswordHash = hash
		if err := s.repo.UpdateAccount(ctx, existing); err != nil {
			return nil, err
		}
	case errx.IsCode(err, sandbox.CodeEmailNotFound):
		account := &sandbox.Account{
			ID:           kernel.NewUserID(newID()),
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    s.now(),
		}
		if err := s.repo.CreateAccount(ctx, account); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.sendVerification(ctx, email, sandbox.PurposeSignup)
}

func validEmail(email kernel.Email) bool {
	addr, err := mail.ParseAddress(email.String())
	return err == nil && addr.Address == email.String()
}

func (s *Service) sendVerification(ctx context.Context, email kernel.Email, purpose sandbox.Purpose) (*auth.VerificationResponse, error) {
	v := &sandbox.Verification{
		ID:        kernel.NewVerificationID(newID()),
		Email:     email,
		Code:      s.newCode(),
		Purpose:   purpose,
		ExpiresAt: s.now().Add(s.cfg.CodeTTL),
	}
	if err := s.repo.SaveVerification(ctx, v); err != nil {
		return nil, err
	}
	if err := s.sender.SendCode(ctx, email, purpose, v.Code); err != nil {
		return nil, errx.Wrap(err, "failed to send verification code", errx.TypeExternal)
	}
	return &auth.VerificationResponse{VerificationID: v.ID}, nil
}

// consume checks and deletes a verification
func (s *Service) consume(ctx context.Context, id kernel.VerificationID, code string, purpose sandbox.Purpose) (*sandbox.Verification, error) {
	v, err := s.repo.GetVerification(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Purpose != purpose || v.Code != strings.TrimSpace(code) {
		return nil, sandbox.ErrInvalidCode()
	}
	if v.IsExpired(s.now()) {
		_ = s.repo.DeleteVerification(ctx, id)
		return nil, sandbox.ErrInvalidCode().WithMessage("Verification code has expired")
	}
	if err := s.repo.DeleteVerification(ctx, id); err != nil {
		return nil, err
	}
	return v, nil
}

// Verify activates the account, grants the starting points and signs the
// user in.
func (s *Service) Verify(ctx context.Context, req auth.VerifyRequest) (*auth.LoginResponse, error) {
	if err := formx.Validate(req).Err(); err != nil {
		return nil, err
	}

	v, err := s.consume(ctx, req.VerificationID, req.Code, sandbox.PurposeSignup)
	if err != nil {
		return nil, err
	}
	account, err := s.repo.GetAccountByEmail(ctx, v.Email)
	if err != nil {
		return nil, err
	}
	if !account.Verified {
		account.Verified = true
		account.Points += s.cfg.StartingPoints
		if err := s.repo.UpdateAccount(ctx, account); err != nil {
			return nil, err
		}
		logx.Infof("Account %s verified", account.Email)
	}
	return s.issue(account)
}

func (s *Service) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) (*auth.VerificationResponse, error) {
	if err := formx.Validate(req).Err(); err != nil {
		return nil, err
	}
	account, err := s.repo.GetAccountByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	return s.sendVerification(ctx, account.Email, sandbox.PurposeReset)
}

func (s *Service) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if req.ConfirmPassword == "" {
		req.ConfirmPassword = req.NewPassword
	}
	if err := formx.Validate(req).Err(); err != nil {
		return err
	}

	v, err := s.consume(ctx, req.VerificationID, req.Code, sandbox.PurposeReset)
	if err != nil {
		return err
	}
	account, err := s.repo.GetAccountByEmail(ctx, v.Email)
	if err != nil {
		return err
	}
	hash, err := sandboxauth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	return s.repo.UpdateAccount(ctx, account)
}

// Seed creates a verified account, used for the demo user
func (s *Service) Seed(ctx context.Context, name, email, password string) (*sandbox.Account, error) {
	hash, err := sandboxauth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	account := &sandbox.Account{
		ID:           kernel.NewUserID(newID()),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Verified:     true,
		Points:       s.cfg.StartingPoints,
		CreatedAt:    s.now(),
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ============================================================================
// Profile
// ============================================================================

func (s *Service) Profile(ctx context.Context, userID kernel.UserID) (*profile.Profile, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := account.Profile()
	return &p, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID kernel.UserID, body profile.ChangePasswordBody) error {
	req := profile.ChangePasswordRequest{
		OldPassword:     body.OldPassword,
		NewPassword:     body.NewPassword,
		ConfirmPassword: body.NewPassword,
	}
	if err := formx.Validate(req).Err(); err != nil {
		return err
	}

	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return err
	}
	if !sandboxauth.CheckPassword(account.PasswordHash, body.OldPassword) {
		return sandbox.ErrWrongPassword()
	}
	hash, err := sandboxauth.HashPassword(body.NewPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	return s.repo.UpdateAccount(ctx, account)
}

// UploadPhoto stores any supported image as JPEG and returns where it lives
func (s *Service) UploadPhoto(ctx context.Context, userID kernel.UserID, data []byte) (*profile.Photo, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	jpeg, err := pdf.ConvertImageToJPEG(data)
	if err != nil {
		return nil, sandbox.ErrInvalidInput("File is not a supported image")
	}

	p := s.files.Join("photos", userID.String(), newID()+".jpg")
	if err := s.files.WriteFile(ctx, p, jpeg); err != nil {
		return nil, err
	}

	photo := &profile.Photo{URL: s.files.Location(p)}
	account.PhotoURL = photo.URL
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *Service) SubmitFeedback(ctx context.Context, userID kernel.UserID, req profile.FeedbackRequest) error {
	form := profile.FeedbackForm{Title: req.Title, Description: req.Description}
	if err := formx.Validate(form).Err(); err != nil {
		return err
	}
	f := &sandbox.Feedback{
		ID:          newID(),
		Owner:       userID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedAt:   s.now(),
	}
	if err := s.repo.AddFeedback(ctx, f); err != nil {
		return err
	}
	logx.Infof("Feedback from %s: %s", userID, req.Title)
	return nil
}

// ============================================================================
// Billing
// ============================================================================

func (s *Service) BillingHistory(ctx context.Context, userID kernel.UserID, opts kernel.PaginationOptions) (*kernel.Paginated[billing.Bill], error) {
	records, err := s.repo.ListBills(ctx, userID)
	if err != nil {
		return nil, err
	}
	bills := make([]billing.Bill, len(records))
	for i, r := range records {
		bills[i] = r.Bill
	}
	page := kernel.NewPaginated(bills, opts)
	return &page, nil
}

// Buy credits the plan's points times quantity and records the charge
func (s *Service) Buy(ctx context.Context, userID kernel.UserID, req billing.PurchaseRequest) (*billing.Purchase, error) {
	if err := formx.Validate(req).Err(); err != nil {
		return nil, err
	}
	plan, ok := sandbox.Plans[req.PlanID]
	if !ok {
		return nil, sandbox.ErrPlanNotFound().WithDetail("plan_id", req.PlanID)
	}

	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	amount := plan.Credits * req.Quantity
	account.Points += amount
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	bill := &sandbox.BillRecord{
		Bill: billing.Bill{
			ID:        kernel.NewBillID(newID()),
			Amount:    amount,
			CreatedAt: s.now(),
		},
		Owner:  userID,
		PlanID: plan.ID,
	}
	if err := s.repo.AddBill(ctx, bill); err != nil {
		return nil, err
	}

	logx.Infof("User %s bought %d x %s (%d points)", userID, req.Quantity, plan.Name, amount)
	return &billing.Purchase{ID: bill.ID.String(), Points: account.Points}, nil
}
