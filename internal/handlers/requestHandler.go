package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sharvik/CritiqueAPI/internal/adapter"
	"github.com/sharvik/CritiqueAPI/internal/adapter/utils"
	"github.com/sharvik/CritiqueAPI/internal/config"
	"github.com/sharvik/CritiqueAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

// carried between the handler and the job queue
type newJobData struct {
	id        string
	traceId   string
	paperName string
	paperPath string
	chunkSize int
	overlap   int
}

// GetHandler godoc
// @Summary      Health check
// @Description  Liveness probe for the API.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func GetHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, map[string]string{"message": "Research paper critique API"})
}

// UploadPaperHandler handles the uploading of research papers for critique.
// @Summary      Upload a research paper for analysis
// @Description  Receives a PDF or DOCX via multipart/form-data, saves it to a temporary directory, and queues an analysis job.
// @Tags         Analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        document    formData  file    true   "The PDF or DOCX file to analyze"
// @Param        paper_name  formData  string  false  "The display name of the paper"
// @Param        chunk_size  formData  int     false  "Chunk size override"
// @Param        overlap     formData  int     false  "Chunk overlap override"
// @Success      202  {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400  {object}  api.JobResponse      "Bad Request - Missing file or file too large"
// @Failure      500  {object}  api.JobResponse      "Internal Server Error - Storage or Write Error"
// @Router       /papers/upload [post]
func UploadPaperHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getTargetDirectory()
		if errString != "" {
			logRH.Error("Couldn't get target directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		const maxUploadSize = 32 << 20 //32mb
		err := r.ParseMultipartForm(maxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		paperName := r.FormValue("paper_name")
		if paperName == "" {
			paperName = fileMetadata.Filename
		}

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, paperName, "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, paperName, "Write error")
			return
		}
		processNewJobData(r, w, paperName, tempFilePath)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific analysis job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse   "The current status of the job"
// @Failure      404  {object}  api.JobResponse   "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}
