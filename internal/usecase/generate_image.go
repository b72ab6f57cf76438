package usecase

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xavierca1/pzk-backend/internal/infra/integration/genapi"
)

// Fixed prompt applied to every uploaded portrait.
const portraitPrompt = "Convert the uploaded photo into a high-contrast black and white " +
	"portrait suitable for granite engraving. Keep facial features sharp, " +
	"remove the background, no text or watermarks."

const (
	defaultPollInterval = 5 * time.Second
	defaultPollTimeout  = 120 * time.Second
	defaultCleanupDelay = 120 * time.Second
)

type GenerateImageInput struct {
	ImageID string
	// FilePath is the staged upload inside the public upload directory.
	FilePath string
}

// GenerateImageUseCase drives one generation request to exactly one terminal
// result: submit the task, poll its status on a fixed cadence within an
// explicit deadline budget, and clean up the staged upload once resolved.
type GenerateImageUseCase struct {
	Client        GenerationClient
	PublicBaseURL string
	CallbackURL   string
	PollInterval  time.Duration
	PollTimeout   time.Duration
	CleanupDelay  time.Duration
}

func NewGenerateImageUseCase(
	client GenerationClient,
	publicBaseURL string,
	callbackURL string,
	pollInterval time.Duration,
	pollTimeout time.Duration,
	cleanupDelay time.Duration,
) *GenerateImageUseCase {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	if cleanupDelay <= 0 {
		cleanupDelay = defaultCleanupDelay
	}
	return &GenerateImageUseCase{
		Client:        client,
		PublicBaseURL: publicBaseURL,
		CallbackURL:   callbackURL,
		PollInterval:  pollInterval,
		PollTimeout:   pollTimeout,
		CleanupDelay:  cleanupDelay,
	}
}

// Execute returns the result image URL or a TechnicalError. A submission
// failure means zero status checks; a status-check failure stops the poll
// without retrying the check itself.
func (uc *GenerateImageUseCase) Execute(ctx context.Context, input GenerateImageInput) (string, error) {
	imageURL := uc.PublicBaseURL + "/uploads/" + filepath.Base(input.FilePath)

	cleanup := newStagedFileCleanup(input.FilePath, uc.CleanupDelay)
	defer cleanup.Resolve()

	taskID, err := uc.Client.CreateTask(ctx, genapi.CreateTaskInput{
		Prompt:      portraitPrompt,
		ImageURLs:   []string{imageURL},
		CallbackURL: uc.CallbackURL,
	})
	if err != nil {
		return "", &TechnicalError{
			Code:    CodeGenerationSubmitFailed,
			Message: "failed to submit generation task: " + err.Error(),
		}
	}
	log.Printf("generation task %s submitted for image %s", taskID, input.ImageID)

	ticker := time.NewTicker(uc.PollInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(uc.PollTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", &TechnicalError{
				Code:    CodeGenerationCancelled,
				Message: fmt.Sprintf("generation task %s abandoned: %v", taskID, ctx.Err()),
			}
		case <-deadline.C:
			return "", &TechnicalError{
				Code:    CodeGenerationTimeout,
				Message: fmt.Sprintf("generation task %s did not finish within %s", taskID, uc.PollTimeout),
			}
		case <-ticker.C:
			status, err := uc.Client.GetTaskStatus(ctx, taskID)
			if err != nil {
				return "", &TechnicalError{
					Code:    CodeGenerationStatusFailed,
					Message: fmt.Sprintf("status check for task %s failed: %v", taskID, err),
				}
			}
			if status.SuccessFlag == genapi.FlagDone {
				log.Printf("generation task %s finished: %s", taskID, status.ResultImageURL)
				return status.ResultImageURL, nil
			}
		}
	}
}

// stagedFileCleanup removes the uploaded source file once the orchestration
// resolves. The fallback timer fires only if the orchestration never reaches
// a terminal state within the delay.
type stagedFileCleanup struct {
	path     string
	fallback *time.Timer
	once     sync.Once
}

func newStagedFileCleanup(path string, delay time.Duration) *stagedFileCleanup {
	c := &stagedFileCleanup{path: path}
	c.fallback = time.AfterFunc(delay, c.remove)
	return c
}

// Resolve cancels the fallback and removes the file immediately.
func (c *stagedFileCleanup) Resolve() {
	c.fallback.Stop()
	c.remove()
}

func (c *stagedFileCleanup) remove() {
	c.once.Do(func() {
		if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove staged file %s: %v", c.path, err)
		}
	})
}
