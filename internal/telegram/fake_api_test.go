package telegram

import (
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeAPI struct {
	mu       sync.Mutex
	filePath string
	fileErr  error
	sendErr  map[string]error
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	made     []madeRequest
	updates  chan tgbotapi.Update
	stopped  bool
	nextID   int
}

type madeRequest struct {
	endpoint string
	params   tgbotapi.Params
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{sendErr: map[string]error{}, updates: make(chan tgbotapi.Update)}
}

func (f *fakeAPI) GetFile(cfg tgbotapi.FileConfig) (tgbotapi.File, error) {
	if f.fileErr != nil {
		return tgbotapi.File{}, f.fileErr
	}
	return tgbotapi.File{FileID: cfg.FileID, FilePath: f.filePath}, nil
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	if err := f.sendErr[chattableKind(c)]; err != nil {
		return tgbotapi.Message{}, err
	}
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.made = append(f.made, madeRequest{endpoint: endpoint, params: params})
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.stopped {
		f.stopped = true
		close(f.updates)
	}
}

func chattableKind(c tgbotapi.Chattable) string {
	switch c.(type) {
	case tgbotapi.DocumentConfig:
		return "document"
	case tgbotapi.PhotoConfig:
		return "photo"
	case tgbotapi.VideoConfig:
		return "video"
	case tgbotapi.AudioConfig:
		return "audio"
	case tgbotapi.MessageConfig:
		return "message"
	}
	return "other"
}

var errWrongType = errors.New("Bad Request: type of file mismatch")
