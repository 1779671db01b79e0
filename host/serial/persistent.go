package serial

import "io"

type persistentReader struct {
	r io.Reader
}

// Persistent wraps r so that empty reads ending in io.EOF, which is how a
// serial read timeout is reported, are retried instead of ending the stream.
// A read that returns data together with io.EOF passes the data through and
// drops the EOF.
func Persistent(r io.Reader) io.Reader {
	return persistentReader{r: r}
}

func (p persistentReader) Read(b []byte) (int, error) {
	for {
		n, err := p.r.Read(b)
		if err == io.EOF {
			if n == 0 {
				continue
			}
			return n, nil
		}
		return n, err
	}
}
