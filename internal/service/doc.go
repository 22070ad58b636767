// Package service coordinates the task entity and a storage Repository.
//
// A Service is what the command line and the terminal viewer talk to. Each
// call maps to one use case (create, list, get, update, complete, delete)
// and performs at most one read and one write of the backing file.
package service
