package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/middlewares"
	"github.com/mmdatafocus/statement_backend/models"
	"github.com/mmdatafocus/statement_backend/models/reports"
	"github.com/mmdatafocus/statement_backend/utils"
	"github.com/sirupsen/logrus"
)

// loadClientStatement parses the request's filters and builds the report,
// writing the error response itself when it fails.
func loadClientStatement(c *gin.Context, funcName string) (*reports.ClientStatementReport, bool) {
	ctx := c.Request.Context()
	logger := config.GetLogger()

	company, ok := utils.GetCompanyFromContext(ctx)
	if !ok || company == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": utils.ErrorCompanyRequired.Error()})
		return nil, false
	}

	filters, err := models.ParseStatementQuery(company, c.Request.URL.Query())
	if err == nil {
		var report *reports.ClientStatementReport
		report, err = reports.GetClientStatementReport(ctx, filters, middlewares.StatementLookups())
		if err == nil {
			return report, true
		}
	}

	if utils.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	userId, _ := utils.GetUserIdFromContext(ctx)
	config.LogError(logger, "statementHandlers.go", funcName, "GetClientStatementReport", map[string]any{
		"query":          c.Request.URL.RawQuery,
		"correlation_id": cid,
		"user_id":        userId,
	}, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build statement"})
	return nil, false
}

func clientStatementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := loadClientStatement(c, "clientStatementHandler")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// clientStatementExportHandler streams the statement as xlsx, or with
// upload=true stores it in object storage and returns its URL.
func clientStatementExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := loadClientStatement(c, "clientStatementExportHandler")
		if !ok {
			return
		}
		logger := config.GetLogger()

		var buf bytes.Buffer
		if err := reports.ExportClientStatementExcel(report, &buf); err != nil {
			config.LogError(logger, "statementHandlers.go", "clientStatementExportHandler", "ExportClientStatementExcel", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export statement"})
			return
		}

		if strings.EqualFold(c.Query("upload"), "true") {
			url, err := uploadStatement(c.Request.Context(), report, buf.Bytes())
			if err != nil {
				if errors.Is(err, utils.ErrorStorageNotEnabled) {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				config.LogError(logger, "statementHandlers.go", "clientStatementExportHandler", "uploadStatement", nil, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload statement"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"url": url})
			return
		}

		filename := fmt.Sprintf("statement_%s_%s.xlsx", report.FromDate.Format(utils.DateLayout), report.ToDate.Format(utils.DateLayout))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, utils.ContentTypeXlsx, buf.Bytes())
	}
}

func uploadStatement(ctx context.Context, report *reports.ClientStatementReport, data []byte) (string, error) {
	company, _ := utils.GetCompanyFromContext(ctx)
	objectKey := utils.StatementObjectKey(company, report.Header.CustomerName, "xlsx")
	if err := utils.UploadBytesToGCS(ctx, objectKey, data, utils.ContentTypeXlsx); err != nil {
		return "", err
	}
	config.LogInfo(config.GetLogger(), "statementHandlers.go", "uploadStatement", "statement uploaded", logrus.Fields{
		"object_key": objectKey,
	})
	return utils.BuildObjectAccessURL(objectKey), nil
}
