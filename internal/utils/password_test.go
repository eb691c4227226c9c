package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-Panier!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !IsArgon2Hash(hash) {
		t.Fatalf("hash inattendu: %s", hash)
	}

	ok, err := VerifyPassword("s3cret-Panier!", hash)
	if err != nil || !ok {
		t.Fatalf("le bon mot de passe doit vérifier (ok=%v, err=%v)", ok, err)
	}

	ok, err = VerifyPassword("mauvais", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Fatal("un mauvais mot de passe ne doit pas vérifier")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("même-mot-de-passe")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("même-mot-de-passe")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatal("deux hachages du même mot de passe doivent différer (sel aléatoire)")
	}
}
