package service

// QRCodeService renders a game's web URL as a QR code image, so a game can
// be opened on another device by scanning.
type QRCodeService interface {
	GenerateGameQR(gameID int) ([]byte, error)
}
