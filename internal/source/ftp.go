package source

import (
	"fmt"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/nshankar/auweather/internal/dataset"
	"github.com/nshankar/auweather/internal/metrics"
)

// FTPClient fetches the dataset CSV from an FTP server. BOM publishes its
// climate archives this way, anonymous login only.
type FTPClient struct {
	host string // host:port
}

func NewFTPClient(host string) *FTPClient {
	return &FTPClient{host: host}
}

func (f *FTPClient) Fetch(path string) (*dataset.Table, error) {
	conn, err := ftp.Dial(f.host, ftp.DialWithTimeout(30*time.Second))
	if err != nil {
		return nil, fmt.Errorf("ftp dial: %w", err)
	}
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return nil, fmt.Errorf("ftp login: %w", err)
	}

	resp, err := conn.Retr(path)
	if err != nil {
		return nil, fmt.Errorf("ftp retr: %w", err)
	}
	defer resp.Close()

	t, err := ReadCSV(resp)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	metrics.DatasetLoadsTotal.WithLabelValues("ftp").Inc()
	return t, nil
}
