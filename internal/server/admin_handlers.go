package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// importWords bulk-loads vocabulary entries from an uploaded .xlsx file.
// Expected columns: topic, word, translation, context, with a header row.
func (s *Server) importWords(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload required"})
		return
	}
	defer file.Close()

	result, err := s.importer.ImportWords(c.Request.Context(), file)
	if err != nil {
		s.log.Error("failed to import words", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "import failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
