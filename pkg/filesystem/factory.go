package filesystem

import (
	"fmt"
)

// Connector opens an SFTP connection. Connect is the production implementation.
type Connector func(host string, port int, user string) (*SFTPConnection, error)

// CreateFileSystem creates a FileSystem for the given path.
// Returns (filesystem, basePath, closer, error).
// - filesystem: The FileSystem to list from
// - basePath: The actual path to use with the filesystem (stripped of URL prefix)
// - closer: A function to call when done (closes SFTP connections), or nil for local
//
// Only malformed SFTP URLs and failed connections are errors. A local path is
// accepted as-is whether or not it exists.
func CreateFileSystem(pathStr string) (FileSystem, string, func(), error) {
	return CreateFileSystemWith(pathStr, Connect)
}

// CreateFileSystemWith is CreateFileSystem with a custom SFTP connector.
func CreateFileSystemWith(pathStr string, connect Connector) (FileSystem, string, func(), error) {
	parsed, err := ParsePath(pathStr)
	if err != nil {
		return nil, "", nil, err
	}

	if !parsed.IsRemote {
		return NewRealFileSystem(), parsed.LocalPath, nil, nil
	}

	conn, err := connect(parsed.Host, parsed.Port, parsed.User)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to connect to %s@%s:%d: %w",
			parsed.User, parsed.Host, parsed.Port, err)
	}

	closer := func() {
		_ = conn.Close()
	}

	return NewSFTPFileSystem(conn), parsed.Path, closer, nil
}
