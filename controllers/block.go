package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salonworks/salon-api/db"
	"github.com/salonworks/salon-api/models"
	"github.com/salonworks/salon-api/schedule"
	"github.com/salonworks/salon-api/utils"
)

// ListManualBlocks returns a staff member's blocked intervals
func ListManualBlocks(c *fiber.Ctx) error {
	staffID, err := c.ParamsInt("id")
	if err != nil || staffID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid staff id",
		})
	}

	var blocks []models.ManualBlock
	if err := db.DB.Where("staff_id = ?", staffID).Order("date asc, time asc").Find(&blocks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch blocks",
			Error:   err.Error(),
		})
	}
	return c.JSON(blocks)
}

// CreateManualBlock marks an interval of a staff member's day unavailable
func CreateManualBlock(c *fiber.Ctx) error {
	staffID, err := c.ParamsInt("id")
	if err != nil || staffID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid staff id",
		})
	}

	if _, err := staffStore.GetStaff(c.Context(), uint(staffID)); err != nil {
		return respondSchedulerError(c, err)
	}

	var block models.ManualBlock
	if err := c.BodyParser(&block); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	day, err := schedule.DateKey(block.Date)
	if err != nil {
		return respondSchedulerError(c, err)
	}
	if _, err := schedule.ToMinutes(block.Time); err != nil {
		return respondSchedulerError(c, err)
	}
	block.Date = day
	block.StaffID = uint(staffID)

	if err := db.DB.Create(&block).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create block",
			Error:   err.Error(),
		})
	}

	schedulerSvc.InvalidateDay(c.Context(), block.StaffID, block.Date)

	return c.Status(fiber.StatusCreated).JSON(block)
}

// DeleteManualBlock removes a blocked interval
func DeleteManualBlock(c *fiber.Ctx) error {
	staffID, err := c.ParamsInt("id")
	if err != nil || staffID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid staff id",
		})
	}
	blockID := c.Params("blockId")

	var block models.ManualBlock
	if err := db.DB.Where("staff_id = ?", staffID).First(&block, blockID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Block not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Delete(&block).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete block",
			Error:   err.Error(),
		})
	}

	schedulerSvc.InvalidateDay(c.Context(), block.StaffID, block.Date)

	return c.SendStatus(fiber.StatusNoContent)
}
