package parameter

import "time"

// Frame Loop & Host Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MinFrameInterval caps the --fps flag (250 FPS)
	MinFrameInterval = 4 * time.Millisecond

	// EventChannelSize is the buffered capacity between the tcell poller and the main loop
	EventChannelSize = 100

	// FeedChannelSize is the per-client outbound message buffer of the websocket feed
	FeedChannelSize = 32

	// FrameMillisSmoothing is the EMA factor of the frame time metric
	FrameMillisSmoothing = 0.1
)

// Coordinate mapping
const (
	// CellWidth is the number of units covered by one terminal column
	CellWidth = 8.0

	// CellHeight is the number of units covered by one terminal row (cells are ~2:1)
	CellHeight = 16.0
)

// Logging
const (
	// LogDir is the directory debug logs are written into
	LogDir = "logs"

	// LogFileName is the debug log file name
	LogFileName = "trailfx.log"

	// MaxLogSize triggers rotation of the debug log (10MB)
	MaxLogSize = 10 * 1024 * 1024
)
