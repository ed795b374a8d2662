// Package smbclient wraps go-smb2 session setup for SMB source trees.
package smbclient

import (
	"encoding/hex"
	"fmt"
	"net"

	"github.com/hirochachacha/go-smb2"
)

type Session struct {
	session *smb2.Session
	conn    net.Conn
}

// Credentials for NTLM authentication. Hash, when set, is the hex NTLM hash
// and takes precedence over Password.
type Credentials struct {
	Username string
	Password string
	Domain   string
	Hash     string
}

func (c Credentials) initiator() (*smb2.NTLMInitiator, error) {
	if c.Hash != "" {
		hashBytes, err := hex.DecodeString(c.Hash)
		if err != nil {
			return nil, fmt.Errorf("invalid ntlm hash: %w", err)
		}
		return &smb2.NTLMInitiator{User: c.Username, Domain: c.Domain, Hash: hashBytes}, nil
	}
	return &smb2.NTLMInitiator{User: c.Username, Password: c.Password, Domain: c.Domain}, nil
}

// Dial connects to host:445 and negotiates an SMB session.
func Dial(host string, creds Credentials) (s *Session, err error) {
	conn, err := net.Dial("tcp", host+":445")
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in SMB dial: %v", r)
			conn.Close()
		}
	}()

	initiator, err := creds.initiator()
	if err != nil {
		conn.Close()
		return nil, err
	}

	d := &smb2.Dialer{Initiator: initiator}
	session, err := d.Dial(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Session{session: session, conn: conn}, nil
}

func (s *Session) Mount(share string) (*smb2.Share, error) {
	return s.session.Mount(share)
}

func (s *Session) Close() {
	if s.session != nil {
		s.session.Logoff()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}
