package google

// Wire types for the generateMessage endpoint.

type generateMessageRequest struct {
	Messages []wireMessage `json:"messages"`
}

type wireMessage struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

type generateMessageResponse struct {
	Candidates []wireMessage `json:"candidates"`
}
