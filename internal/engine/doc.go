// Package engine is the structural pass of a report. It walks a report's
// group chain over rows that are already sorted by the group fields and
// reports what it sees to listeners as a stream of events: a group started,
// the data cursor advanced by one row, a group finished.
//
// Group boundaries are detected by comparing the field values of each group
// level with the previous row using axis key equality. When a level changes,
// it and every level nested below it are finished and restarted.
//
// The engine is synchronous. Listeners run on the caller's goroutine in the
// order they were given, and the first listener error aborts the pass.
package engine
