package api

const defaultMaxUploadBytes int64 = 8 << 20

// Option configures a Server.
type Option func(*Server)

// WithMaxUploadBytes limits the size of uploaded workbooks.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}
