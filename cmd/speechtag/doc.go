// Command speechtag tags speech recordings for corpus construction. It
// processes files one-shot or in batch, watches a directory for new
// recordings, and manages the persistent processing queue.
package main
