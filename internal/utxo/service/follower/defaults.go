package follower

import "time"

const (
	pollInterval  = 10 * time.Second
	retryInterval = 5 * time.Second
)
