package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vividexpense-be/internal/middleware"
	"vividexpense-be/internal/models"
	"vividexpense-be/internal/service"
)

type ExpenseController struct {
	expenseService service.ExpenseService
}

func NewExpenseController(expenseService service.ExpenseService) *ExpenseController {
	return &ExpenseController{
		expenseService: expenseService,
	}
}

// CreateExpense handles POST /api/expenses
func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Invalid request body", err)
		return
	}

	expense, err := ec.expenseService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// ListExpenses handles GET /api/expenses?category=&start_date=&end_date=
func (ec *ExpenseController) ListExpenses(c *gin.Context) {
	var query models.ExpenseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, "Invalid query parameters", err)
		return
	}

	expenses, err := ec.expenseService.List(c.Request.Context(), middleware.UserID(c), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense handles GET /api/expenses/:id
func (ec *ExpenseController) GetExpense(c *gin.Context) {
	expense, err := ec.expenseService.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense handles PUT /api/expenses/:id
func (ec *ExpenseController) UpdateExpense(c *gin.Context) {
	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Invalid request body", err)
		return
	}

	expense, err := ec.expenseService.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense handles DELETE /api/expenses/:id
func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	if err := ec.expenseService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Expense deleted",
	})
}
