package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/application/service"
	"github.com/sangkips/shop-pos/internal/domain/entity"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
)

// PrinterHandler exposes the receipt printer
type PrinterHandler struct {
	printerService *service.PrinterService
}

func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// TestPrint prints a sample receipt. The rendered text is returned either way
// so the page can be checked without a printer attached.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint(c.Request.Context())
	printed(c, receipt, err, "Test page sent to printer")
}

// printed replies to a print job. A receipt that was built but could not be
// sent is still a 200, with the printer error as a warning.
func printed(c *gin.Context, receipt *entity.Receipt, err error, message string) {
	if receipt == nil {
		response.Error(c, err)
		return
	}

	body := gin.H{
		"receipt": receipt,
		"text":    service.FormatReceiptText(receipt),
	}
	if err != nil {
		body["warning"] = err.Error()
		message = "Receipt generated but printing failed"
	}
	response.OK(c, message, body)
}
