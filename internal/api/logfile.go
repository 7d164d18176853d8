package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/openlogger/internal/api/models"
	"github.com/smazurov/openlogger/internal/logfile"
	"github.com/smazurov/openlogger/internal/logs"
)

const (
	welcomeMessage  = "Welcome to openlogger"
	createdMessage  = "Log entry created successfully"
	filteredMessage = "Log entry below the configured threshold"
)

// route is one path of an operation. Every log file operation is reachable
// under the legacy /openlogger prefix and under /api/v1/logfile.
type route struct {
	id     string
	method string
	path   string
}

func (s *Server) registerLogFileRoutes() {
	for _, r := range []route{
		{"welcome", http.MethodGet, "/openlogger"},
		{"welcome-v1", http.MethodGet, "/api/v1/logfile"},
	} {
		huma.Register(s.api, huma.Operation{
			OperationID: r.id,
			Method:      r.method,
			Path:        r.path,
			Summary:     "Welcome",
			Description: "Greeting for clients probing the service",
			Tags:        []string{"logfile"},
			Security:    []map[string][]string{},
		}, func(ctx context.Context, input *struct{}) (*models.WelcomeResponse, error) {
			return &models.WelcomeResponse{
				Body: models.WelcomeData{Code: http.StatusOK, Data: welcomeMessage},
			}, nil
		})
	}

	for _, r := range []route{
		{"write-entry", http.MethodPost, "/openlogger/write"},
		{"write-entry-v1", http.MethodPost, "/api/v1/logfile"},
		{"write-entry-v1-put", http.MethodPut, "/api/v1/logfile"},
	} {
		huma.Register(s.api, huma.Operation{
			OperationID: r.id,
			Method:      r.method,
			Path:        r.path,
			Summary:     "Write Log Entry",
			Description: "Append an entry to today's log file. Entries below the configured threshold are accepted but not written.",
			Tags:        []string{"logfile"},
			Errors:      []int{400, 401, 422, 500},
			Security:    withAuth(),
		}, s.writeEntry)
	}

	for _, r := range []route{
		{"list-files", http.MethodGet, "/openlogger/view"},
		{"list-files-v1", http.MethodGet, "/api/v1/logfile/files"},
	} {
		huma.Register(s.api, huma.Operation{
			OperationID: r.id,
			Method:      r.method,
			Path:        r.path,
			Summary:     "List Log Files",
			Description: "List the regular files in the log directory",
			Tags:        []string{"logfile"},
			Errors:      []int{401, 404, 500},
			Security:    withAuth(),
		}, s.listFiles)
	}

	for _, r := range []route{
		{"search-files", http.MethodPost, "/openlogger/search"},
		{"search-files-v1", http.MethodPost, "/api/v1/logfile/search"},
	} {
		huma.Register(s.api, huma.Operation{
			OperationID: r.id,
			Method:      r.method,
			Path:        r.path,
			Summary:     "Search Log Files",
			Description: "Find dated log files by year and optional month and day",
			Tags:        []string{"logfile"},
			Errors:      []int{401, 422, 500},
			Security:    withAuth(),
		}, s.searchFiles)
	}

	for _, r := range []route{
		{"read-file", http.MethodPost, "/openlogger/read"},
		{"read-file-v1", http.MethodPost, "/api/v1/logfile/read"},
	} {
		huma.Register(s.api, huma.Operation{
			OperationID: r.id,
			Method:      r.method,
			Path:        r.path,
			Summary:     "Read Log File",
			Description: "Return every line of a file in the log directory",
			Tags:        []string{"logfile"},
			Errors:      []int{401, 404, 422, 500},
			Security:    withAuth(),
		}, s.readFile)
	}
}

func (s *Server) writeEntry(ctx context.Context, input *models.WriteLogRequest) (*models.WriteLogResponse, error) {
	res, err := s.logService.Write(ctx, logs.WriteParams{
		Severity: input.Body.ErrorType,
		Message:  input.Body.Message,
		Context:  input.Body.Context,
	})
	if err != nil {
		return nil, mapLogError(err)
	}

	msg := createdMessage
	if !res.Written {
		msg = filteredMessage
	}
	return &models.WriteLogResponse{
		Body: models.WriteLogResponseBody{
			Code: http.StatusOK,
			Data: models.WriteResultData{
				Message:    msg,
				Written:    res.Written,
				File:       res.File,
				Generation: res.Generation,
			},
		},
	}, nil
}

func (s *Server) listFiles(ctx context.Context, _ *struct{}) (*models.FileListResponse, error) {
	files, err := s.logService.ListFiles(ctx)
	if err != nil {
		return nil, mapLogError(err)
	}
	return fileListResponse(files), nil
}

func (s *Server) searchFiles(ctx context.Context, input *models.SearchRequest) (*models.FileListResponse, error) {
	files, err := s.logService.Search(ctx, logs.SearchParams{
		Year:  fmt.Sprintf("%04d", input.Body.Year),
		Month: input.Body.Month,
		Day:   input.Body.Day,
	})
	if err != nil {
		return nil, mapLogError(err)
	}
	return fileListResponse(files), nil
}

func (s *Server) readFile(ctx context.Context, input *models.ReadRequest) (*models.ReadResponse, error) {
	lines, err := s.logService.Read(ctx, input.Body.Filename)
	if err != nil {
		return nil, mapLogError(err)
	}
	return &models.ReadResponse{
		Body: models.ReadBody{Code: http.StatusOK, Data: lines},
	}, nil
}

func fileListResponse(files []logfile.FileInfo) *models.FileListResponse {
	data := make([]models.FileData, len(files))
	for i, f := range files {
		data[i] = models.FileData{
			FileName:      f.Name,
			FileExtention: f.Extension,
			FilePath:      f.Path,
		}
	}
	return &models.FileListResponse{
		Body: models.FileListBody{Code: http.StatusOK, Data: data},
	}
}
