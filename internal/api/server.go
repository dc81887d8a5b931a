package api

import "github.com/raosiddharth510-rao/store/internal/api/handler"

type Server struct {
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	OrderHandler    *handler.OrderHandler
	ReportHandler   *handler.ReportHandler
	FeedbackHandler *handler.FeedbackHandler
}

func NewServer(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	reportHandler *handler.ReportHandler,
	feedbackHandler *handler.FeedbackHandler,
) *Server {
	return &Server{
		CatalogHandler:  catalogHandler,
		CartHandler:     cartHandler,
		OrderHandler:    orderHandler,
		ReportHandler:   reportHandler,
		FeedbackHandler: feedbackHandler,
	}
}
