//go:build !amd64 && !arm64

package flowhash

func detectArch() Capability {
	return Capability{}
}
