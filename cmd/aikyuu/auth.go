package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/pkg/formx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
)

func runLogin(ctx context.Context, c *Container, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("AIKYUU_PASSWORD"), "account password")
	_ = fs.Parse(args)

	s, err := c.Auth.Login(ctx, auth.SignInRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", s.Email)
	return nil
}

func runLogout(ctx context.Context, c *Container, _ []string) error {
	return c.Auth.Logout(ctx)
}

func runSignup(ctx context.Context, c *Container, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("AIKYUU_PASSWORD"), "password")
	agree := fs.Bool("agree", false, "agree to the terms of service")
	_ = fs.Parse(args)

	id, err := c.Auth.Signup(ctx, auth.RegisterForm{
		Name:            *name,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *password,
		AgreeToTerms:    *agree,
	})
	if err != nil {
		return err
	}
	fmt.Printf("verification id: %s\n", id)
	return nil
}

func runVerify(ctx context.Context, c *Container, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	id := fs.String("id", "", "verification id")
	code := fs.String("code", "", "code received by email")
	_ = fs.Parse(args)

	s, err := c.Auth.Verify(ctx, auth.VerifyRequest{VerificationID: kernel.NewVerificationID(*id), Code: *code})
	if err != nil {
		return err
	}
	if s != nil {
		fmt.Printf("verified, signed in as %s\n", s.Email)
	}
	return nil
}

func runForgot(ctx context.Context, c *Container, args []string) error {
	fs := flag.NewFlagSet("forgot", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	_ = fs.Parse(args)

	id, err := c.Auth.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: *email})
	if err != nil {
		return err
	}
	fmt.Printf("verification id: %s\n", id)
	return nil
}

func runReset(ctx context.Context, c *Container, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	id := fs.String("id", "", "verification id")
	code := fs.String("code", "", "code received by email")
	password := fs.String("password", os.Getenv("AIKYUU_NEW_PASSWORD"), "new password")
	_ = fs.Parse(args)

	strength := formx.PasswordStrength(*password)
	fmt.Fprintf(os.Stderr, "password strength: %s\n", strength.Label)

	return c.Auth.ResetPassword(ctx, auth.ResetPasswordRequest{
		VerificationID:  kernel.NewVerificationID(*id),
		Code:            *code,
		NewPassword:     *password,
		ConfirmPassword: *password,
	})
}
