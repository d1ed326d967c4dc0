// Command importclients loads legacy client records from an Excel workbook
// into the clients table. Rows whose identity details match an existing
// client are skipped.
//
// Expected columns, data starting at row 2:
// A=type (company|individual), B=company name, C=contact person, D=phone,
// E=email, F=trade license number, G=emirate, H=address, I=notes.
//
// Usage: go run ./cmd/importclients clients.xlsx
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"maktab/internal/config"
	"maktab/internal/domain"
	"maktab/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return errors.New("usage: importclients <file.xlsx>")
	}
	xlsxPath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}

	repo := postgres.NewClientRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var imported, skipped int
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		client := &domain.Client{
			ClientType:         parseClientType(cellVal(row, 0)),
			CompanyName:        strings.TrimSpace(cellVal(row, 1)),
			ContactPerson:      strings.TrimSpace(cellVal(row, 2)),
			Phone:              strings.TrimSpace(cellVal(row, 3)),
			Email:              strings.TrimSpace(cellVal(row, 4)),
			TradeLicenseNumber: strings.TrimSpace(cellVal(row, 5)),
			Emirate:            strings.TrimSpace(cellVal(row, 6)),
			Address:            strings.TrimSpace(cellVal(row, 7)),
			Notes:              strings.TrimSpace(cellVal(row, 8)),
		}
		if client.CompanyName == "" && client.ContactPerson == "" {
			continue
		}

		existing, err := repo.FindDuplicate(ctx, client)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("duplicate check at row %d: %w", i+1, err)
		}
		if err == nil {
			log.Printf("row %d: skipping, matches existing client %s", i+1, existing.ClientNumber)
			skipped++
			continue
		}

		last, err := repo.LastNumber(ctx)
		if err != nil {
			return fmt.Errorf("client numbering at row %d: %w", i+1, err)
		}
		client.ClientNumber = domain.NextClientNumber(last, time.Now().UTC())

		if err := repo.Create(ctx, client); err != nil {
			return fmt.Errorf("insert at row %d: %w", i+1, err)
		}
		imported++
	}

	log.Printf("imported %d clients, skipped %d duplicates", imported, skipped)
	return nil
}

func parseClientType(s string) domain.ClientType {
	if strings.EqualFold(strings.TrimSpace(s), "individual") {
		return domain.ClientTypeIndividual
	}
	return domain.ClientTypeCompany
}

func cellVal(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
