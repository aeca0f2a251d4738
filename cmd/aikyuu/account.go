package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Abraxas-365/aikyuu/account/billing"
	"github.com/Abraxas-365/aikyuu/account/profile"
	"github.com/Abraxas-365/aikyuu/pkg/formx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
)

func runProfile(ctx context.Context, c *Container, args []string) error {
	if len(args) > 0 && args[0] == "photo" {
		if len(args) < 2 {
			return fmt.Errorf("usage: aikyuu profile photo <file>")
		}
		a, err := readAttachment(args[1])
		if err != nil {
			return err
		}
		photo, err := c.Profile.UploadPhoto(ctx, *a)
		if err != nil {
			return err
		}
		fmt.Println(photo.URL)
		return nil
	}

	p, err := c.Profile.Get(ctx)
	if err != nil {
		return err
	}
	printTable([]string{"Name", "Email", "Points", "Member since"}, [][]string{{
		p.Name, string(p.Email), strconv.Itoa(p.Points), formatDate(p.CreatedAt),
	}})
	return nil
}

func runBilling(ctx context.Context, c *Container, args []string) error {
	verb, rest, err := subcommand(args, "billing <history|buy>")
	if err != nil {
		return err
	}

	switch verb {
	case "history":
		fs := flag.NewFlagSet("billing history", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		_ = fs.Parse(rest)

		res, err := c.Billing.History(ctx, kernel.PaginationOptions{PageNumber: *page, PageSize: compactPageSize})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(res.Items))
		for _, b := range res.Items {
			rows = append(rows, []string{string(b.ID), b.Package(), b.StartDate()})
		}
		printTable([]string{"ID", "Package", "Date"}, rows)
		pageFooter(res.Count, res.TotalPages)

	case "buy":
		fs := flag.NewFlagSet("billing buy", flag.ExitOnError)
		plan := fs.String("plan", "", "plan id")
		qty := fs.Int("quantity", 1, "number of packages")
		_ = fs.Parse(rest)

		p, err := c.Billing.BuyProduct(ctx, billing.PurchaseRequest{PlanID: *plan, Quantity: *qty})
		if err != nil {
			return err
		}
		switch {
		case p.CheckoutURL != "":
			fmt.Printf("complete the payment at %s\n", p.CheckoutURL)
		case p.Points > 0:
			fmt.Printf("balance: %d points\n", p.Points)
		}

	default:
		return fmt.Errorf("unknown billing command %q", verb)
	}
	return nil
}

func runPassword(ctx context.Context, c *Container, args []string) error {
	verb, rest, err := subcommand(args, "password change")
	if err != nil {
		return err
	}
	if verb != "change" {
		return fmt.Errorf("unknown password command %q", verb)
	}

	fs := flag.NewFlagSet("password change", flag.ExitOnError)
	old := fs.String("old", os.Getenv("AIKYUU_PASSWORD"), "current password")
	next := fs.String("new", os.Getenv("AIKYUU_NEW_PASSWORD"), "new password")
	_ = fs.Parse(rest)

	fmt.Fprintf(os.Stderr, "password strength: %s\n", formx.PasswordStrength(*next).Label)
	return c.Profile.ChangePassword(ctx, profile.ChangePasswordRequest{
		OldPassword:     *old,
		NewPassword:     *next,
		ConfirmPassword: *next,
	})
}

func runFeedback(ctx context.Context, c *Container, args []string) error {
	fs := flag.NewFlagSet("feedback", flag.ExitOnError)
	title := fs.String("title", "", "short summary")
	desc := fs.String("description", "", "what happened")
	image := fs.String("image", "", "optional screenshot")
	_ = fs.Parse(args)

	form := profile.FeedbackForm{Title: *title, Description: *desc}
	if *image != "" {
		a, err := readAttachment(*image)
		if err != nil {
			return err
		}
		form.Attachment = a
	}
	return c.Profile.SendFeedback(ctx, form)
}

func readAttachment(path string) (*profile.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &profile.Attachment{Name: filepath.Base(path), Data: data}, nil
}
