// Package logfile implements the file-backed log engine: severity filtering,
// deterministic formatting, dated file naming and the writer that owns the
// open file.
//
// # Usage
//
//	engine, err := logfile.New(logfile.Options{
//		Directory: "customlogs",
//		Threshold: severity.Warning,
//	})
//	if err != nil {
//		return err
//	}
//	defer engine.Close()
//
//	engine.Debug("dropped", nil)                                      // below threshold
//	engine.Error("disk full", logfile.NewContext("device", "/dev/sda")) // written
//
// With default options the entry above is appended to
// customlogs/log_2024-03-05.log as:
//
//	[2024-03-05 14:02:11] [ERROR] disk full
//	    device: "/dev/sda"
//
// # File names
//
// Files are named prefix + YYYY-MM-DD + "." + extension, so one file exists per
// day. SearchPattern turns a date prefix back into a glob over those names.
// A Filename option replaces the dated name; names already ending in .log or
// .txt are used as given.
//
// # Concurrency
//
// Each Engine serializes its own calls. Engines created per request against the
// same file should share a PathLocks registry so their appends do not
// interleave.
package logfile
