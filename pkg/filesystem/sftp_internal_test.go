//nolint:varnamelen,testpackage // Test files use idiomatic short variable names
package filesystem

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

// recordingCloser records the order in which closers run.
type recordingCloser struct {
	name  string
	err   error
	order *[]string
}

func (c *recordingCloser) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

// fakeLister stands in for *sftp.Client.
type fakeLister struct {
	dirs    map[string][]os.FileInfo
	readErr error
}

func (f *fakeLister) ReadDir(p string) ([]os.FileInfo, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}

	infos, ok := f.dirs[p]
	if !ok {
		return nil, os.ErrNotExist
	}

	return infos, nil
}

func (f *fakeLister) Lstat(p string) (os.FileInfo, error) {
	return nil, os.ErrNotExist
}

func (f *fakeLister) Stat(p string) (os.FileInfo, error) {
	if _, ok := f.dirs[p]; ok {
		return (&mockFile{path: p, isDir: true, perm: 0o755}).info(), nil
	}

	return nil, os.ErrNotExist
}

func TestSFTPConnection_Close_ClosesSFTPThenSSH(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	order := make([]string, 0)
	conn := &SFTPConnection{
		closer:    &recordingCloser{name: "sftp", order: &order},
		sshClient: &recordingCloser{name: "ssh", order: &order},
	}

	g.Expect(conn.Close()).To(Succeed())
	g.Expect(order).To(Equal([]string{"sftp", "ssh"}))
}

func TestSFTPConnection_Close_ReturnsFirstError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	order := make([]string, 0)
	sftpErr := errors.New("sftp close failed")
	sshErr := errors.New("ssh close failed")

	conn := &SFTPConnection{
		closer:    &recordingCloser{name: "sftp", err: sftpErr, order: &order},
		sshClient: &recordingCloser{name: "ssh", err: sshErr, order: &order},
	}

	g.Expect(conn.Close()).To(MatchError(sftpErr))
	g.Expect(order).To(Equal([]string{"sftp", "ssh"}))
}

func TestSFTPConnection_Close_NilClients(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	conn := &SFTPConnection{}

	g.Expect(conn.Close()).To(Succeed())
	g.Expect(conn.Client()).To(BeNil())
}

func TestSFTPConnection_String(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	conn := &SFTPConnection{host: "box", port: 2222, user: "joe"}

	g.Expect(conn.String()).To(Equal("joe@box:2222"))
}

func TestSFTPFileSystem_OpenDir(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	now := time.Now()
	lister := &fakeLister{dirs: map[string][]os.FileInfo{
		"data": {
			(&mockFile{path: "data/a", size: 1, modTime: now}).info(),
			nil,
			(&mockFile{path: "data/b", isDir: true, modTime: now}).info(),
		},
	}}

	fs := &SFTPFileSystem{client: lister}

	handle, err := fs.OpenDir("data")
	g.Expect(err).ShouldNot(HaveOccurred())

	first, err := handle.Next()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(first.Name()).To(Equal("a"))

	_, err = handle.Next()
	g.Expect(err).To(MatchError(os.ErrInvalid))

	second, err := handle.Next()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(second.IsDir()).To(BeTrue())

	_, err = handle.Next()
	g.Expect(err).To(MatchError(io.EOF))

	g.Expect(handle.Close()).To(Succeed())

	_, err = handle.Next()
	g.Expect(err).To(MatchError(io.EOF))
}

func TestSFTPFileSystem_OpenDirFailure(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := &SFTPFileSystem{client: &fakeLister{readErr: os.ErrPermission}}

	_, err := fs.OpenDir("/etc/secret")
	g.Expect(err).To(MatchError(os.ErrPermission))
	g.Expect(err.Error()).To(ContainSubstring("/etc/secret"))

	_, err = fs.Lstat("/etc/secret")
	g.Expect(err).To(MatchError(os.ErrNotExist))
}

func TestSFTPFileSystem_JoinUsesSlashes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := &SFTPFileSystem{}

	g.Expect(fs.Join("/var", "log", "syslog")).To(Equal("/var/log/syslog"))
}

func TestSFTPFileSystem_StatFollowsToDirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := &SFTPFileSystem{client: &fakeLister{dirs: map[string][]os.FileInfo{"linked": nil}}}

	info, err := fs.Stat("linked")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.IsDir()).To(BeTrue())

	_, err = fs.Stat("missing")
	g.Expect(err).To(MatchError(os.ErrNotExist))
	g.Expect(err.Error()).To(ContainSubstring("missing"))
}
