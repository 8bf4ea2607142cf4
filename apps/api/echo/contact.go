package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core/contact"
)

type SuccessResponse struct {
	Success string `json:"success"`
}

func registerContactAPI(g *echo.Group, svc *contact.Service) {
	g.POST("/contact", func(ctx echo.Context) error {
		var data contact.Message
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to contact.Message")
		}
		if err := svc.Send(data); err != nil {
			return errors.Wrap(err, "sending contact message")
		}
		return ctx.JSON(http.StatusAccepted, SuccessResponse{Success: "Thanks! Your message has been sent to the PUNotes team."})
	})
}
