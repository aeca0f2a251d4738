package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
)

func runResumes(ctx context.Context, c *Container, args []string) error {
	verb, rest, err := subcommand(args, "resumes <list|upload|delete|download>")
	if err != nil {
		return err
	}

	switch verb {
	case "list":
		fs := flag.NewFlagSet("resumes list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		size := fs.Int("size", compactPageSize, "page size")
		id, err := positional(fs, rest, "position-id")
		if err != nil {
			return err
		}
		res, err := c.Resumes.List(ctx, kernel.NewPositionID(id), kernel.PaginationOptions{PageNumber: *page, PageSize: *size})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(res.Items))
		for _, r := range res.Items {
			rows = append(rows, []string{string(r.ID), r.Title, formatScore(r.IsScored(), r.Score), formatDate(r.CreatedAt)})
		}
		printTable([]string{"ID", "Title", "Score", "Uploaded"}, rows)
		pageFooter(res.Count, res.TotalPages)

	case "upload":
		fs := flag.NewFlagSet("resumes upload", flag.ExitOnError)
		positionID := fs.String("position", "", "position id")
		_ = fs.Parse(rest)
		if fs.NArg() == 0 {
			return resume.ErrNoFiles()
		}

		files := make([]resume.File, 0, fs.NArg())
		for _, path := range fs.Args() {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			files = append(files, resume.File{Name: filepath.Base(path), Data: data})
		}

		report, err := c.Resumes.UploadMany(ctx, kernel.NewPositionID(*positionID), files)
		if report != nil {
			rows := make([][]string, 0, len(report.Results))
			for _, r := range report.Results {
				status := "ok"
				if !r.OK() {
					status = r.Err.Error()
				}
				rows = append(rows, []string{r.File, status})
			}
			printTable([]string{"File", "Result"}, rows)
		}
		return err

	case "delete":
		id, err := positional(flag.NewFlagSet("resumes delete", flag.ExitOnError), rest, "resume-id")
		if err != nil {
			return err
		}
		return c.Resumes.Delete(ctx, kernel.NewResumeID(id))

	case "download":
		fs := flag.NewFlagSet("resumes download", flag.ExitOnError)
		dir := fs.String("dir", ".", "destination directory")
		id, err := positional(fs, rest, "resume-id")
		if err != nil {
			return err
		}
		file, err := c.Resumes.FetchFile(ctx, kernel.NewResumeID(id))
		if err != nil {
			return err
		}
		name := file.Name
		if name == "" {
			name = id
		}
		dest := filepath.Join(*dir, filepath.Base(name))
		if err := os.WriteFile(dest, file.Data, 0o644); err != nil {
			return err
		}
		fmt.Println(dest)

	default:
		return fmt.Errorf("unknown resumes command %q", verb)
	}
	return nil
}
