package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alimgiray/pessoas/internal/models"
	"github.com/alimgiray/pessoas/internal/services"
	"github.com/alimgiray/pessoas/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	msgMissingFile      = "Nenhum arquivo foi enviado."
	msgReadFailed       = "Erro ao ler o arquivo: "
	msgInvalidSchema    = "Estrutura da planilha inválida. As colunas devem ser: nome, e-mail, data de nascimento, ativo."
	msgMethodNotAllowed = "Método não permitido."
	msgSaveFailed       = "Erro ao salvar os dados da planilha."
	msgExportFailed     = "Erro ao gerar a planilha."
	msgInvalidFilter    = "Filtro 'ativo' inválido."
	msgPersonNotFound   = "Pessoa não encontrada."
	msgInternalError    = "Erro interno."
)

type PersonHandler struct {
	importService *services.ImportService
	exportService *services.ExportService
	personService *services.PersonService
}

func NewPersonHandler(
	importService *services.ImportService,
	exportService *services.ExportService,
	personService *services.PersonService,
) *PersonHandler {
	return &PersonHandler{
		importService: importService,
		exportService: exportService,
		personService: personService,
	}
}

// UploadSpreadsheet imports the multipart "file" field and returns the active people
func (h *PersonHandler) UploadSpreadsheet(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		respondImportError(c, services.ErrMethodNotAllowed)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondImportError(c, services.ErrMissingFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondImportError(c, &services.ParseError{Cause: err})
		return
	}
	defer file.Close()

	results, err := h.importService.Import(c.Request.Context(), file)
	if err != nil {
		logger.WithError(err).WithField("filename", fileHeader.Filename).Warn("Spreadsheet rejected")
		respondImportError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// respondImportError maps import errors to their status code and message
func respondImportError(c *gin.Context, err error) {
	var parseErr *services.ParseError
	switch {
	case errors.Is(err, services.ErrMethodNotAllowed):
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": msgMethodNotAllowed})
	case errors.Is(err, services.ErrMissingFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFile})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgReadFailed + parseErr.Cause.Error()})
	case errors.Is(err, services.ErrSchema):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidSchema})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgSaveFailed})
	}
}

// DownloadSpreadsheet sends every active person as an xlsx attachment
func (h *PersonHandler) DownloadSpreadsheet(c *gin.Context) {
	file, err := h.exportService.ExportActive(c.Request.Context())
	if err != nil {
		logger.WithError(err).Error("Failed to export spreadsheet")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgExportFailed})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// ListPeople lists stored people, optionally filtered by ?ativo= and ?q=
func (h *PersonHandler) ListPeople(c *gin.Context) {
	filter := models.PersonFilter{Search: c.Query("q")}

	if value := c.Query("ativo"); value != "" {
		active, err := strconv.ParseBool(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidFilter})
			return
		}
		filter.Active = &active
	}

	people, err := h.personService.ListPeople(c.Request.Context(), filter)
	if err != nil {
		logger.WithError(err).Error("Failed to list people")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
		return
	}

	if people == nil {
		people = []*models.Person{}
	}
	c.JSON(http.StatusOK, people)
}

// GetPerson returns a single person by email
func (h *PersonHandler) GetPerson(c *gin.Context) {
	person, err := h.personService.GetPersonByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgPersonNotFound})
			return
		}
		logger.WithError(err).Error("Failed to get person")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
		return
	}

	c.JSON(http.StatusOK, person)
}
