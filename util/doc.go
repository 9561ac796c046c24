// Package util holds small string helpers shared by config display and logging.
package util
