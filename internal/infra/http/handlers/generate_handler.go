package handlers

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/xavierca1/pzk-backend/internal/infra/http/middleware"
	"github.com/xavierca1/pzk-backend/internal/usecase"
)

const maxUploadBytes = 32 << 20

type GenerateHandler struct {
	GenerateImageUseCase *usecase.GenerateImageUseCase
	UploadDir            string
}

func NewGenerateHandler(uc *usecase.GenerateImageUseCase, uploadDir string) *GenerateHandler {
	return &GenerateHandler{GenerateImageUseCase: uc, UploadDir: uploadDir}
}

type GenerateResponse struct {
	Image string `json:"image"`
}

// Handle stages the multipart upload under the public upload directory and
// blocks until the generation resolves. Failures are an opaque 500 with an
// empty body; the staged file's lifecycle belongs to the use case.
func (h *GenerateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	imageID := r.FormValue("imageId")
	if imageID == "" || filepath.Base(imageID) != imageID || imageID == "." || imageID == ".." {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	stagedPath := filepath.Join(h.UploadDir, imageID+ext)

	if err := h.stageUpload(file, stagedPath); err != nil {
		log.Printf("[%s] failed to stage upload: %v", requestID, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	log.Printf("[%s] staged upload %s", requestID, stagedPath)

	imageURL, err := h.GenerateImageUseCase.Execute(r.Context(), usecase.GenerateImageInput{
		ImageID:  imageID,
		FilePath: stagedPath,
	})
	if err != nil {
		log.Printf("[%s] generation failed: %v", requestID, err)
		middleware.RecordGenerationJob("error")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	middleware.RecordGenerationJob("success")
	writeJSON(w, http.StatusOK, GenerateResponse{Image: imageURL})
}

func (h *GenerateHandler) stageUpload(src io.Reader, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
