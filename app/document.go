package app

import (
	"fmt"

	"evidencija/adapters/excel"
)

// Document is a rendered spreadsheet ready for download
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
	// Warnings lists data that did not fit the template and was left out
	Warnings []string
}

func newDocument(wb *excel.Workbook, warnings []string) (*Document, error) {
	body, err := wb.Bytes()
	if err != nil {
		return nil, err
	}
	return &Document{
		Filename:    wb.Layout().Filename,
		ContentType: excel.ContentTypeXLSX,
		Body:        body,
		Warnings:    warnings,
	}, nil
}

func droppedWarning(n int, what string, capacity int) string {
	return fmt.Sprintf("%d %s left out, template holds %d", n, what, capacity)
}
