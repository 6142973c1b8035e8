package service

import (
	"strings"

	"github.com/proposalhub/submission-service/pkg/hash"
)

type HashService interface {
	CalculateHash(data []byte) (string, error)
	VerifyHash(data []byte, expectedHash string) (bool, error)
	GetHashAlgorithm() string
}

type hashService struct {
	algorithm string
	hasher    *hash.ContentHasher
}

func NewHashService(algorithm string) HashService {
	algorithm = strings.ToLower(algorithm)
	return &hashService{
		algorithm: algorithm,
		hasher:    hash.NewContentHasher(hash.Algorithm(algorithm)),
	}
}

func (s *hashService) CalculateHash(data []byte) (string, error) {
	return s.hasher.Calculate(data)
}

func (s *hashService) VerifyHash(data []byte, expectedHash string) (bool, error) {
	calculated, err := s.hasher.Calculate(data)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(calculated, expectedHash), nil
}

func (s *hashService) GetHashAlgorithm() string {
	return s.algorithm
}
