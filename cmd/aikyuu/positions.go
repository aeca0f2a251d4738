package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
)

const (
	compactPageSize = 10
	allPageSize     = 1000
)

func runPositions(ctx context.Context, c *Container, args []string) error {
	verb, rest, err := subcommand(args, "positions <list|get|create|update|delete|duplicate>")
	if err != nil {
		return err
	}

	switch verb {
	case "list":
		fs := flag.NewFlagSet("positions list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		all := fs.Bool("all", false, "show every position")
		_ = fs.Parse(rest)

		c.Prefs.SetShowAll(*all)
		res, err := c.Positions.List(ctx, kernel.PaginationOptions{
			PageNumber: *page,
			PageSize:   c.Prefs.ListPageSize(compactPageSize, allPageSize),
		})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(res.Items))
		for _, p := range res.Items {
			rows = append(rows, []string{
				string(p.ID), p.Title, string(p.Status),
				strconv.Itoa(len(p.Criterias)), strconv.Itoa(len(p.Resumes)),
				formatDate(p.CreatedAt),
			})
		}
		printTable([]string{"ID", "Title", "Status", "Criteria", "Resumes", "Created"}, rows)
		pageFooter(res.Count, res.TotalPages)

	case "get":
		id, err := positional(flag.NewFlagSet("positions get", flag.ExitOnError), rest, "position-id")
		if err != nil {
			return err
		}
		p, err := c.Positions.GetByID(ctx, kernel.NewPositionID(id))
		if err != nil {
			return err
		}
		printPosition(p)

	case "create":
		fs := flag.NewFlagSet("positions create", flag.ExitOnError)
		title := fs.String("title", "", "position title")
		desc := fs.String("description", "", "position description")
		_ = fs.Parse(rest)

		p, err := c.Positions.Create(ctx, position.CreatePositionRequest{Title: *title, Description: *desc})
		if err != nil {
			return err
		}
		fmt.Println(p.ID)

	case "update":
		fs := flag.NewFlagSet("positions update", flag.ExitOnError)
		title := fs.String("title", "", "position title")
		desc := fs.String("description", "", "position description")
		id, err := positional(fs, rest, "position-id")
		if err != nil {
			return err
		}
		return c.Positions.Update(ctx, kernel.NewPositionID(id), position.UpdatePositionRequest{Title: *title, Description: *desc})

	case "delete":
		id, err := positional(flag.NewFlagSet("positions delete", flag.ExitOnError), rest, "position-id")
		if err != nil {
			return err
		}
		return c.Positions.Delete(ctx, kernel.NewPositionID(id))

	case "duplicate":
		id, err := positional(flag.NewFlagSet("positions duplicate", flag.ExitOnError), rest, "position-id")
		if err != nil {
			return err
		}
		p, err := c.Positions.Duplicate(ctx, kernel.NewPositionID(id))
		if err != nil {
			return err
		}
		fmt.Println(p.ID)

	default:
		return fmt.Errorf("unknown positions command %q", verb)
	}
	return nil
}

func printPosition(p *position.Position) {
	fmt.Printf("%s  [%s]\n%s\n\n", p.Title, p.Status, p.Description)

	crit := make([][]string, 0, len(p.Criterias))
	for _, cr := range p.Criterias {
		crit = append(crit, []string{string(cr.ID), cr.Description})
	}
	printTable([]string{"Criteria ID", "Description"}, crit)
	fmt.Println()

	resumes := p.Resumes
	if p.IsCompleted() {
		resumes = p.RankedResumes()
	}
	rows := make([][]string, 0, len(resumes))
	for _, r := range resumes {
		rows = append(rows, []string{string(r.ID), r.Title, formatScore(p.IsCompleted(), r.Score), r.Explanation})
	}
	printTable([]string{"Resume ID", "Title", "Score", "Explanation"}, rows)
}

func runCriteria(ctx context.Context, c *Container, args []string) error {
	verb, rest, err := subcommand(args, "criteria <list|add|delete>")
	if err != nil {
		return err
	}

	switch verb {
	case "list":
		id, err := positional(flag.NewFlagSet("criteria list", flag.ExitOnError), rest, "position-id")
		if err != nil {
			return err
		}
		list, err := c.Criteria.List(ctx, kernel.NewPositionID(id))
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(list))
		for _, cr := range list {
			rows = append(rows, []string{string(cr.ID), cr.Description})
		}
		printTable([]string{"ID", "Description"}, rows)

	case "add":
		fs := flag.NewFlagSet("criteria add", flag.ExitOnError)
		desc := fs.String("description", "", "what a resume must show")
		id, err := positional(fs, rest, "position-id")
		if err != nil {
			return err
		}
		cr, err := c.Criteria.Create(ctx, kernel.NewPositionID(id), criteria.CreateCriteriaRequest{Description: *desc})
		if err != nil {
			return err
		}
		fmt.Println(cr.ID)

	case "delete":
		fs := flag.NewFlagSet("criteria delete", flag.ExitOnError)
		positionID := fs.String("position", "", "position id")
		id, err := positional(fs, rest, "criteria-id")
		if err != nil {
			return err
		}
		return c.Criteria.Delete(ctx, kernel.NewPositionID(*positionID), kernel.NewCriteriaID(id))

	default:
		return fmt.Errorf("unknown criteria command %q", verb)
	}
	return nil
}
