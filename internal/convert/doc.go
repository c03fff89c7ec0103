// Package convert implements file conversion: the tool invoker that performs
// a single conversion, the batch driver that processes an ordered list of
// requests with per-file error isolation, and the asynchronous service that
// tracks conversion tasks for the UI.
package convert
