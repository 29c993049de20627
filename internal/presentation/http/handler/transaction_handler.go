package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/application/service"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
)

// TransactionHandler exposes the sales ledger and receipt reprints
type TransactionHandler struct {
	ledgerService  *service.LedgerService
	printerService *service.PrinterService
	loc            *time.Location
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService *service.LedgerService, printerService *service.PrinterService, loc *time.Location) *TransactionHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TransactionHandler{ledgerService: ledgerService, printerService: printerService, loc: loc}
}

// List handles listing transactions, newest first
func (h *TransactionHandler) List(c *gin.Context) {
	var req request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	from, err := parseDate("from", req.From, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseDate("to", req.To, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}

	result, err := h.ledgerService.ListTransactions(c.Request.Context(), service.TransactionFilter{
		From:       from,
		To:         to,
		Pagination: paginationParams(req.Page, req.PerPage),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Transactions retrieved successfully", result)
}

// Get handles getting a transaction by ID or receipt number
func (h *TransactionHandler) Get(c *gin.Context) {
	tx, err := h.ledgerService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", tx)
}

// Receipt returns the receipt of a transaction, as JSON or as plain text
// with ?format=text.
func (h *TransactionHandler) Receipt(c *gin.Context) {
	var req request.ReceiptRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "format must be json or text")
		return
	}

	receipt, err := h.printerService.ReceiptForTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	text := service.FormatReceiptText(receipt)
	if req.Format == "text" {
		c.String(http.StatusOK, text)
		return
	}

	response.OK(c, "Receipt retrieved successfully", gin.H{
		"receipt": receipt,
		"text":    text,
	})
}

// Print reprints the receipt of a transaction
func (h *TransactionHandler) Print(c *gin.Context) {
	receipt, err := h.printerService.PrintTransaction(c.Request.Context(), c.Param("id"))
	printed(c, receipt, err, "Receipt printed")
}
