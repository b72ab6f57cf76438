package genapi

// Upstream success flag values. The API only distinguishes "still
// processing" from "done"; it reports no explicit failure state.
const (
	FlagProcessing = 0
	FlagDone       = 1
)

type CreateTaskInput struct {
	Prompt      string
	ImageURLs   []string
	CallbackURL string
}

type TaskStatus struct {
	SuccessFlag    int
	ResultImageURL string
}

type createTaskRequest struct {
	Prompt      string   `json:"prompt"`
	ImageUrls   []string `json:"imageUrls"`
	CallbackUrl string   `json:"callbackUrl,omitempty"`
}

type createTaskResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID string `json:"taskId"`
	} `json:"data"`
}

type taskStatusResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		SuccessFlag int `json:"successFlag"`
		Response    struct {
			ResultUrls []string `json:"resultUrls"`
		} `json:"response"`
	} `json:"data"`
}
