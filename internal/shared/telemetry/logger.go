package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Info emits an info-level JSON log line.
func Info(msg string, fields map[string]any) {
	emit("info", msg, fields)
}

// Error emits an error-level JSON log line.
func Error(msg string, fields map[string]any) {
	emit("error", msg, fields)
}

func emit(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg
	for k, v := range fields {
		entry[k] = v
	}
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":"%s","level":"error","msg":"logger marshal failed","err":%q}`+"\n", time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}
