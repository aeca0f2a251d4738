package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

func printTable(header []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02.01.2006 15:04")
}

func formatScore(scored bool, score float64) string {
	if !scored {
		return "-"
	}
	return strconv.FormatFloat(score, 'f', 1, 64)
}

func pageFooter(count, pages int) {
	if pages > 1 {
		fmt.Printf("%d total, %d pages\n", count, pages)
	}
}
