package models

// Health check models
type HealthData struct {
	Status     string `json:"status" example:"ok" doc:"Service status"`
	Message    string `json:"message" example:"API is healthy" doc:"Status message"`
	Directory  string `json:"directory" example:"customlogs" doc:"Active log directory"`
	Threshold  string `json:"threshold" example:"debug" doc:"Active severity threshold"`
	Generation uint64 `json:"generation" example:"1" doc:"Active logger options generation"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"1.0.0" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2024-03-05T14:02:11Z" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24.11" doc:"Go toolchain version"`
	Platform  string `json:"platform" example:"linux/amd64" doc:"Target platform"`
}

type VersionResponse struct {
	Body VersionData
}

// Welcome models
type WelcomeData struct {
	Code int    `json:"code" example:"200" doc:"HTTP status code"`
	Data string `json:"data" example:"Welcome to openlogger" doc:"Greeting"`
}

type WelcomeResponse struct {
	Body WelcomeData
}

// Write models
type WriteLogData struct {
	ErrorType string `json:"errortype" enum:"emergency,alert,critical,error,warning,notice,info,debug" example:"error" doc:"Severity of the entry"`
	Message   string `json:"message" minLength:"1" maxLength:"255" example:"disk full" doc:"Free-text message"`
	Context   string `json:"context,omitempty" required:"false" maxLength:"255" example:"{\"disk\":\"/dev/sda1\"}" doc:"Optional JSON object encoded as a string"`
}

type WriteLogRequest struct {
	Body WriteLogData
}

type WriteResultData struct {
	Message    string `json:"message" example:"Log entry created successfully" doc:"Outcome"`
	Written    bool   `json:"written" example:"true" doc:"False when the entry was below the severity threshold"`
	File       string `json:"file,omitempty" example:"log_2024-03-05.log" doc:"File the entry was appended to"`
	Generation uint64 `json:"generation" example:"1" doc:"Options generation used for the write"`
}

type WriteLogResponseBody struct {
	Code int             `json:"code" example:"200" doc:"HTTP status code"`
	Data WriteResultData `json:"data"`
}

type WriteLogResponse struct {
	Body WriteLogResponseBody
}

// File listing models. Field names follow the wire format of existing clients.
type FileData struct {
	FileName      string `json:"fileName" example:"log_2024-03-05.log" doc:"File name"`
	FileExtention string `json:"fileExtention" example:"log" doc:"Extension without the leading dot"`
	FilePath      string `json:"filePath" example:"customlogs/log_2024-03-05.log" doc:"Path of the file"`
}

type FileListBody struct {
	Code int        `json:"code" example:"200" doc:"HTTP status code"`
	Data []FileData `json:"data" doc:"Matching files"`
}

type FileListResponse struct {
	Body FileListBody
}

// Search models
type SearchData struct {
	Year  int    `json:"year" minimum:"1900" example:"2024" doc:"Four digit year, not after the current year"`
	Month string `json:"month,omitempty" required:"false" pattern:"^(0[1-9]|1[0-2])$" example:"03" doc:"Two digit month"`
	Day   string `json:"day,omitempty" required:"false" pattern:"^(0[1-9]|[12][0-9]|3[01])$" example:"05" doc:"Two digit day"`
}

type SearchRequest struct {
	Body SearchData
}

// Read models
type ReadData struct {
	Filename string `json:"filename" minLength:"3" maxLength:"255" example:"log_2024-03-05.log" doc:"Name of a file in the log directory"`
}

type ReadRequest struct {
	Body ReadData
}

type ReadBody struct {
	Code int      `json:"code" example:"200" doc:"HTTP status code"`
	Data []string `json:"data" doc:"Lines of the file, each with its terminator"`
}

type ReadResponse struct {
	Body ReadBody
}
