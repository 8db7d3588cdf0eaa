package utils

// DereferenceSeed は、int64のポインタを安全にデリファレンスします。
// ポインタがnilの場合は0を返します。
func DereferenceSeed(seed *int64) int64 {
	if seed == nil {
		return 0
	}
	return *seed
}

// SeedForAttempt はバッチ内 attempt 番目の試行に使うシードを返します。
// base が nil の場合は nil（ランダム）のままにします。
// 同じプロンプトで複数枚を得るため、試行ごとに値をずらします。
func SeedForAttempt(base *int64, attempt int) *int64 {
	if base == nil {
		return nil
	}
	v := *base + int64(attempt)
	return &v
}

// SeedToPtrInt32 は *int64 を Gemini SDK 用の *int32 に変換します。
// int32 の範囲外の値は上位ビットが切り捨てられます。
func SeedToPtrInt32(seed *int64) *int32 {
	if seed == nil {
		return nil
	}
	v := int32(*seed)
	return &v
}
