//go:build darwin || freebsd

package process

// FIONREAD, _IOR('f', 127, int).
const ioctlReadable = 0x4004667f
