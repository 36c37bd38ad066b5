// meta/meta.go
package meta

import "time"

// DEFAULT_BOT_NAME is the display name used when none is supplied.
const DEFAULT_BOT_NAME = "sweep-bot"

// BOARD_WIDTH and BOARD_HEIGHT are the board dimensions assumed until the
// coordinator sends a map.
const BOARD_WIDTH = 15
const BOARD_HEIGHT = 15

// JOIN_TIMEOUT bounds a single join attempt.
const JOIN_TIMEOUT = time.Second

// JOIN_RETRY_INTERVAL is the fixed delay between join attempts.
const JOIN_RETRY_INTERVAL = time.Second

// TURN_DEADLINE is the coordinator's response deadline for a turn.
const TURN_DEADLINE = time.Second

// MAX_WORKERS defines the number of calls the server handles at once.
const MAX_WORKERS = 10
