package controller

import (
	"io"

	"github.com/gamepedia/community-service/internal/dto"
	"github.com/gamepedia/community-service/pkg/errs"
	"github.com/labstack/echo/v4"
)

func readFormFile(e echo.Context, field string) (dto.FileUpload, error) {
	fileHeader, err := e.FormFile(field)
	if err != nil {
		return dto.FileUpload{}, errs.ErrNoImage
	}

	file, err := fileHeader.Open()
	if err != nil {
		return dto.FileUpload{}, errs.ErrNoImage
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		return dto.FileUpload{}, errs.ErrNoImage
	}

	return dto.FileUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
