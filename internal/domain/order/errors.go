package order

import "errors"

var ErrNotificationFailed = errors.New("order notification failed")
