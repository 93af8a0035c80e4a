package pixhist

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// BufferedCSV implements Outputer interface. Writes a HistogramSet as CSV
// through a write buffer. Every Save replaces the previous content of a
// regular file; on stdout results are appended.
type BufferedCSV struct {
	mux  sync.Mutex
	w    *bufio.Writer
	file *os.File
	// rewind is set for regular files.
	rewind bool
	saved  int
}

// DefaultBufferLen defines default output buffer length in bytes.
const DefaultBufferLen = 16 * 1024

// StdoutName is the output name that selects standard output.
const StdoutName = "-"

// NewBufferedCSV returns new BufferedCSV instance. If size < 512, DefaultBufferLen will be assigned.
func NewBufferedCSV(size int) *BufferedCSV {
	if size < 512 {
		size = DefaultBufferLen
	}
	return &BufferedCSV{w: bufio.NewWriterSize(nil, size)}
}

// Open creates or truncates the file. StdoutName writes to standard output.
func (out *BufferedCSV) Open(fname string) error {
	out.mux.Lock()
	defer out.mux.Unlock()

	if fname == StdoutName {
		out.file = os.Stdout
		out.rewind = false
		out.w.Reset(out.file)
		return nil
	}

	var err error
	out.file, err = os.OpenFile(fname, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	out.rewind = true
	out.w.Reset(out.file)
	return nil
}

// Save writes header and 256 rows of hs to the output.
func (out *BufferedCSV) Save(hs *HistogramSet) error {
	return out.SaveResult(hs)
}

// SaveResult writes any Resulter to the output.
func (out *BufferedCSV) SaveResult(res Resulter) error {

	out.mux.Lock()
	defer out.mux.Unlock()

	if out.file == nil {
		// ignore, if Save() is called later than Close().
		return nil
	}

	if out.rewind && out.saved > 0 {
		if _, err := out.file.Seek(0, io.SeekStart); err != nil {
			return err
		}
		if err := out.file.Truncate(0); err != nil {
			return err
		}
	}

	if _, err := out.w.WriteString(res.Header()); err != nil {
		return err
	}
	if _, err := out.w.WriteString(res.Result()); err != nil {
		return err
	}
	out.saved++
	return out.w.Flush()
}

// Close flushes to the output unsaved buffer and closes file.
func (out *BufferedCSV) Close() error {
	out.mux.Lock()
	defer out.mux.Unlock()

	if out.file == nil {
		return nil
	}

	err := out.w.Flush()
	if out.file != os.Stdout {
		if cerr := out.file.Close(); err == nil {
			// return error related to Flush first.
			err = cerr
		}
	}

	out.file = nil
	return err
}
