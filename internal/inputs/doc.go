// Package inputs expands the files and directories named on the command line
// into the ordered list of video files a concat run considers.
package inputs
